package core

// Category 是候选物品的类目。打分与归一化都以类目为边界：
// 不同类目的 raw score 没有可比性，排序只在类目内进行。
type Category string

const (
	CategoryMovies Category = "movies"
	CategoryMusic  Category = "music"
	CategoryPlaces Category = "places"
	CategoryEvents Category = "events"
)

// Categories 返回全部已知类目（稳定顺序）。
func Categories() []Category {
	return []Category{CategoryMovies, CategoryMusic, CategoryPlaces, CategoryEvents}
}

// IdentifierField 返回该类目物品的标识字段名。
// 媒体类（movies/music）用 title，实体类（places/events）用 name。
func (c Category) IdentifierField() string {
	switch c {
	case CategoryMovies, CategoryMusic:
		return "title"
	default:
		return "name"
	}
}

// GenreField 返回该类目的风格字段名。
func (c Category) GenreField() string {
	switch c {
	case CategoryMovies, CategoryMusic:
		return "genre"
	case CategoryPlaces:
		return "type"
	case CategoryEvents:
		return "category"
	default:
		return "genre"
	}
}

// RatingScale 返回该类目评分的量表满分：movies/music 是 10 分制，其余 5 分制。
func (c Category) RatingScale() float64 {
	switch c {
	case CategoryMovies, CategoryMusic:
		return 10
	default:
		return 5
	}
}
