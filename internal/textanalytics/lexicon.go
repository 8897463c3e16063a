package textanalytics

// StopWords are dropped by the tokenizer (Chinese and English).
var StopWords = map[string]struct{}{}

// PositiveWords and NegativeWords drive the lexicon scorer. A token matches
// an entry when it contains it as a substring.
var (
	PositiveWords = []string{
		"好", "棒", "优秀", "喜欢", "爱", "满意", "推荐", "完美", "很棒", "太好了",
		"excellent", "good", "great", "awesome", "love", "like", "amazing", "wonderful", "perfect", "fantastic",
	}
	NegativeWords = []string{
		"坏", "差", "糟糕", "讨厌", "恨", "不满", "失望", "垃圾", "不好", "很差",
		"bad", "terrible", "awful", "hate", "worst", "horrible", "disgusting", "pathetic", "disappointing",
	}
)

func init() {
	for _, w := range []string{
		"的", "了", "是", "在", "和", "有", "我", "你", "他", "她", "它", "我们", "你们", "他们", "这", "那", "不", "要", "也",
		"the", "is", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by", "from", "up",
		"about", "into", "through", "during", "before", "after", "above", "below", "between", "among", "until",
		"while", "as", "if", "because", "since", "unless", "although", "though", "whether", "than", "that",
		"this", "these", "those", "all", "any", "each", "every", "some", "many", "few", "most", "other",
		"another", "such", "only", "own", "same", "so", "more", "very", "can", "will", "just", "should", "now",
	} {
		StopWords[w] = struct{}{}
	}
}
