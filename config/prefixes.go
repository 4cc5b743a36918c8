package config

// russianPrefixes - продуктивные приставки и префиксоиды русского языка.
var russianPrefixes = []string{
	"авиа", "авто", "аква", "анти", "анти-", "антропо", "архи", "арт", "арт-",
	"астро", "аудио", "аэро", "без", "бес", "био", "вело", "взаимо", "вне",
	"внутри", "видео", "вице-", "вперед", "впереди", "гекто", "гелио", "гео",
	"гетеро", "гига", "гигро", "гипер", "гипо", "гомо", "дву", "двух", "де",
	"дез", "дека", "деци", "дис", "до", "евро", "за", "зоо", "интер", "инфра",
	"квази", "квази-", "кило", "кино", "контр", "контр-", "космо", "космо-",
	"крипто", "лейб-", "лже", "лже-", "макро", "макси", "макси-", "мало", "меж",
	"медиа", "медиа-", "мега", "мета", "мета-", "метео", "метро", "микро",
	"милли", "мини", "мини-", "моно", "мото", "много", "мульти", "нано",
	"нарко", "не", "небез", "недо", "нейро", "нео", "низко", "обер-", "обще",
	"одно", "около", "орто", "палео", "пан", "пара", "пента", "пере", "пиро",
	"поли", "полу", "после", "пост", "пост-", "порно", "пра", "пра-", "пред",
	"пресс-", "противо", "противо-", "прото", "псевдо", "псевдо-", "радио",
	"разно", "ре", "ретро", "ретро-", "само", "санти", "сверх", "сверх-",
	"спец", "суб", "супер", "супер-", "супра", "теле", "тетра", "топ-", "транс",
	"транс-", "ультра", "унтер-", "штаб-", "экзо", "эко", "эко-", "экс", "экс-",
	"экстра", "экстра-", "электро", "электро-", "эндо", "энерго", "этно",
}
