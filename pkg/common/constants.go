package common

const (
	RedisKeyTranslationPrefix = "screener:translation:"

	CacheKeySymbols      = "symbols"
	CacheKeySeriesPrefix = "series:"

	DefaultFilePrefix = "cleaned_"
	DefaultFileSuffix = ".csv"

	StatusNotFound      = "not_found"
	StatusNoResults     = "no_results"
	StatusNotUnderstood = "not_understood"
	StatusSmallTalk     = "small_talk"
)
