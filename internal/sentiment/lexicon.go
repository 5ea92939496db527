package sentiment

// Signal lexicons for code-mixed Indonesian/English text. Entries are
// matched as lowercase substrings, so multi-word phrases count too.
// Note "sangat buruk" also matches its "buruk" substring; the double
// count is accepted as part of the naive matching semantics.
var positiveWords = []string{
	"baik",
	"bagus",
	"hebat",
	"luar biasa",
	"excellent",
	"amazing",
	"great",
	"good",
	"wonderful",
	"fantastic",
}

var negativeWords = []string{
	"buruk",
	"jelek",
	"sangat buruk",
	"terrible",
	"awful",
	"bad",
	"horrible",
	"disappointing",
	"frustrating",
}
