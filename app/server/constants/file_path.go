package constants

// 菜谱图片
const (
	RecipeImagePathPrefix = "uploads/recipe/"
)

// 本地存储
const (
	MediaURLPrefix = "/media/"
	MediaRoot      = "/data/recipe/media/"
)
