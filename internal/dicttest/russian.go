package dicttest

// Граммемы подмножества OpenCorpora: [значение, родитель, псевдоним, описание].
var russianGrammemes = [][4]string{
	{"POST", "", "ЧР", "часть речи"},
	{"NOUN", "POST", "СУЩ", "имя существительное"},
	{"ADJF", "POST", "ПРИЛ", "имя прилагательное (полное)"},
	{"VERB", "POST", "ГЛ", "глагол (личная форма)"},
	{"INFN", "POST", "ИНФ", "глагол (инфинитив)"},
	{"NUMR", "POST", "ЧИСЛ", "числительное"},
	{"NPRO", "POST", "МС", "местоимение-существительное"},
	{"PREP", "POST", "ПР", "предлог"},
	{"CONJ", "POST", "СОЮЗ", "союз"},
	{"PRCL", "POST", "ЧАСТ", "частица"},
	{"INTJ", "POST", "МЕЖД", "междометие"},
	{"ANim", "", "Од-неод", "категория одушевлённости"},
	{"anim", "ANim", "од", "одушевлённое"},
	{"inan", "ANim", "неод", "неодушевлённое"},
	{"GNdr", "", "хр", "род / род не выражен"},
	{"masc", "GNdr", "мр", "мужской род"},
	{"femn", "GNdr", "жр", "женский род"},
	{"neut", "GNdr", "ср", "средний род"},
	{"NMbr", "", "Число", "число"},
	{"sing", "NMbr", "ед", "единственное число"},
	{"plur", "NMbr", "мн", "множественное число"},
	{"CAse", "", "Падеж", "категория падежа"},
	{"nomn", "CAse", "им", "именительный падеж"},
	{"gent", "CAse", "рд", "родительный падеж"},
	{"datv", "CAse", "дт", "дательный падеж"},
	{"accs", "CAse", "вн", "винительный падеж"},
	{"ablt", "CAse", "тв", "творительный падеж"},
	{"loct", "CAse", "пр", "предложный падеж"},
	{"ASpc", "", "Вид", "категория вида"},
	{"perf", "ASpc", "сов", "совершенный вид"},
	{"impf", "ASpc", "несов", "несовершенный вид"},
	{"TRns", "", "Перех", "категория переходности"},
	{"tran", "TRns", "перех", "переходный"},
	{"intr", "TRns", "неперех", "непереходный"},
	{"PErs", "", "Лицо", "категория лица"},
	{"1per", "PErs", "1л", "1 лицо"},
	{"3per", "PErs", "3л", "3 лицо"},
	{"TEns", "", "Время", "категория времени"},
	{"pres", "TEns", "наст", "настоящее время"},
	{"past", "TEns", "прош", "прошедшее время"},
	{"MOod", "", "Накл", "категория наклонения"},
	{"indc", "MOod", "изъяв", "изъявительное наклонение"},
	{"Qual", "", "кач", "качественное"},
	{"Supr", "", "превосх", "превосходная степень"},
	{"Anph", "", "Анаф", "анафорическое (местоимение)"},
	{"Apro", "", "мест-п", "местоименное"},
}

// Лексемы тестового словаря. Используются и как данные, и как ожидания.
var (
	Krasivyj = Lexeme{Stem: "красив", Forms: append(forms(
		"ый|ADJF,Qual masc,sing,nomn",
		"ого|ADJF,Qual masc,sing,gent",
		"ому|ADJF,Qual masc,sing,datv",
		"ого|ADJF,Qual anim,masc,sing,accs",
		"ый|ADJF,Qual inan,masc,sing,accs",
		"ая|ADJF,Qual femn,sing,nomn",
		"ой|ADJF,Qual femn,sing,gent",
		"ое|ADJF,Qual neut,sing,nomn",
		"ого|ADJF,Qual neut,sing,gent",
		"ые|ADJF,Qual plur,nomn",
	), Form{Prefix: "наи", Suffix: "ейший", Tag: "ADJF,Supr,Qual masc,sing,nomn"})}

	Koshka = Lexeme{Stem: "кош", Forms: forms(
		"ка|NOUN,anim,femn sing,nomn",
		"ки|NOUN,anim,femn sing,gent",
		"ке|NOUN,anim,femn sing,datv",
		"ку|NOUN,anim,femn sing,accs",
		"кой|NOUN,anim,femn sing,ablt",
		"ке|NOUN,anim,femn sing,loct",
		"ки|NOUN,anim,femn plur,nomn",
		"ек|NOUN,anim,femn plur,gent",
	)}

	Stol = Lexeme{Stem: "стол", Forms: forms(
		"|NOUN,inan,masc sing,nomn",
		"а|NOUN,inan,masc sing,gent",
		"у|NOUN,inan,masc sing,datv",
		"|NOUN,inan,masc sing,accs",
		"ом|NOUN,inan,masc sing,ablt",
		"е|NOUN,inan,masc sing,loct",
		"ы|NOUN,inan,masc plur,nomn",
		"ов|NOUN,inan,masc plur,gent",
	)}

	Yolka = Lexeme{Stem: "ёлк", Forms: forms(
		"а|NOUN,inan,femn sing,nomn",
		"и|NOUN,inan,femn sing,gent",
		"е|NOUN,inan,femn sing,datv",
		"у|NOUN,inan,femn sing,accs",
	)}

	On = Lexeme{Stem: "", Forms: forms(
		"он|NPRO,masc,3per,Anph sing,nomn",
		"его|NPRO,masc,3per,Anph sing,gent",
	)}

	V = Lexeme{Stem: "в", Forms: forms("|PREP")}

	Chitat = Lexeme{Stem: "чита", Forms: forms(
		"ть|INFN,impf,tran",
		"ю|VERB,impf,tran sing,1per,pres,indc",
		"ет|VERB,impf,tran sing,3per,pres,indc",
		"л|VERB,impf,tran masc,sing,past,indc",
	)}
)

// Russian возвращает небольшой русский словарь с таблицей P(t|w) для слова «красивого».
func Russian() Fixture {
	return Fixture{
		Grammemes:        russianGrammemes,
		Lexemes:          []Lexeme{Krasivyj, Koshka, Stol, Yolka, On, V, Chitat},
		ParadigmPrefixes: []string{"", "по", "наи"},
		MaxSuffixLength:  5,
		Probabilities: map[string]int{
			"красивого:ADJF,Qual neut,sing,gent":      500000,
			"красивого:ADJF,Qual masc,sing,gent":      300000,
			"красивого:ADJF,Qual anim,masc,sing,accs": 200000,
		},
	}
}
