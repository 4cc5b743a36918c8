// Package tagset описывает граммемы и наборы граммем (теги) словаря
// OpenCorpora: иерархию категорий, интернирование и проверки принадлежности.
package tagset

// Граммемы-категории. Корень иерархии любой граммемы совпадает с одной из них.
const (
	CategoryPOS          = "POST"
	CategoryAnimacy      = "ANim"
	CategoryAspect       = "ASpc"
	CategoryCase         = "CAse"
	CategoryGender       = "GNdr"
	CategoryInvolvement  = "INvl"
	CategoryMood         = "MOod"
	CategoryNumber       = "NMbr"
	CategoryPerson       = "PErs"
	CategoryTense        = "TEns"
	CategoryTransitivity = "TRns"
	CategoryVoice        = "VOic"
)

// maxDepth ограничивает подъём по родителям на случай циклов в данных.
const maxDepth = 32

// Grammeme - одно значение морфологического признака, например nomn или ADJF.
// Родитель хранится по имени и разрешается через Storage при обращении.
type Grammeme struct {
	Value       string `json:"value"`
	ParentValue string `json:"parent,omitempty"`
	Alias       string `json:"alias,omitempty"`
	Description string `json:"description,omitempty"`

	storage *Storage
}

// Parent возвращает родительскую граммему или nil.
func (g *Grammeme) Parent() *Grammeme {
	if g.ParentValue == "" || g.storage == nil {
		return nil
	}
	p, ok := g.storage.LookupGrammeme(g.ParentValue)
	if !ok {
		return nil
	}
	return p
}

// Root поднимается по родителям до вершины дерева.
// Для граммемы без родителя возвращает её саму.
func (g *Grammeme) Root() *Grammeme {
	cur := g
	for i := 0; i < maxDepth; i++ {
		p := cur.Parent()
		if p == nil || p == cur {
			return cur
		}
		cur = p
	}
	return cur
}

// Equal сравнивает граммемы по значению.
func (g *Grammeme) Equal(other *Grammeme) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.Value == other.Value
}

func (g *Grammeme) String() string {
	return g.Value
}
