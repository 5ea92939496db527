package language

// Closed-class and high-frequency vocabulary for the two languages seen
// in the monitored streams. Function words dominate on purpose: they are
// the most reliable per-token language signal in code-mixed text.

var indonesianWords = wordSet(
	"yang", "dan", "di", "ke", "dari", "untuk", "dengan", "pada", "ini",
	"itu", "tidak", "ada", "sudah", "belum", "akan", "bisa", "masih",
	"juga", "saya", "kami", "kita", "mereka", "dia", "kamu", "anda",
	"satu", "dua", "tahun", "orang", "banyak", "lebih", "sangat",
	"semua", "harus", "dalam", "atau", "tapi", "tetapi", "karena",
	"sebagai", "oleh", "adalah", "telah", "bukan", "saja", "begitu",
	"sekarang", "kemarin", "besok", "negara", "pemerintah", "rakyat",
	"masyarakat", "kebijakan", "ekonomi", "kerja", "kinerja", "baik",
	"bagus", "buruk", "jelek", "hebat", "semoga", "menjadi", "membuat",
	"melakukan", "memberikan", "terhadap", "seperti", "antara", "setelah",
	"sebelum", "ketika", "kalau", "jika", "supaya", "agar", "perlu",
	"kemajuan", "perubahan", "masalah",
)

var englishWords = wordSet(
	"the", "a", "an", "and", "or", "but", "of", "to", "in", "on", "at",
	"for", "with", "from", "by", "is", "are", "was", "were", "be",
	"been", "has", "have", "had", "do", "does", "did", "will", "would",
	"can", "could", "should", "they", "their", "them", "this", "that",
	"these", "those", "it", "its", "we", "our", "you", "your", "i",
	"my", "not", "no", "yes", "very", "really", "still", "just",
	"overall", "about", "more", "most", "some", "many", "much", "so",
	"how", "what", "when", "where", "which", "who", "see", "next",
	"year", "people", "economy", "government", "policy", "policies",
	"progress", "challenges", "leadership", "performance", "results",
	"expectations", "issues", "growth", "future",
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
