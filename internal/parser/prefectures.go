package parser

import "strings"

// Prefectures is the fixed set of 47 prefecture names, longest-priority order
// is not needed here because names are matched with their suffix included.
var Prefectures = []string{
	"北海道",
	"青森県", "岩手県", "宮城県", "秋田県", "山形県", "福島県",
	"茨城県", "栃木県", "群馬県", "埼玉県", "千葉県", "東京都", "神奈川県",
	"新潟県", "富山県", "石川県", "福井県", "山梨県", "長野県",
	"岐阜県", "静岡県", "愛知県", "三重県",
	"滋賀県", "京都府", "大阪府", "兵庫県", "奈良県", "和歌山県",
	"鳥取県", "島根県", "岡山県", "広島県", "山口県",
	"徳島県", "香川県", "愛媛県", "高知県",
	"福岡県", "佐賀県", "長崎県", "熊本県", "大分県", "宮崎県", "鹿児島県",
	"沖縄県",
}

// DesignatedCities maps each government-ordinance-designated city to its
// governing prefecture. These cities are legally subdivided into wards and
// are often written without the prefecture ("さいたま市大宮区...").
var DesignatedCities = map[string]string{
	"札幌市":   "北海道",
	"仙台市":   "宮城県",
	"さいたま市": "埼玉県",
	"千葉市":   "千葉県",
	"横浜市":   "神奈川県",
	"川崎市":   "神奈川県",
	"相模原市":  "神奈川県",
	"新潟市":   "新潟県",
	"静岡市":   "静岡県",
	"浜松市":   "静岡県",
	"名古屋市":  "愛知県",
	"京都市":   "京都府",
	"大阪市":   "大阪府",
	"堺市":    "大阪府",
	"神戸市":   "兵庫県",
	"岡山市":   "岡山県",
	"広島市":   "広島県",
	"北九州市":  "福岡県",
	"福岡市":   "福岡県",
	"熊本市":   "熊本県",
}

// prefectureStems maps shorthand prefecture mentions (suffix dropped) to the
// official name. 北海道 never appears without its suffix so it is absent.
var prefectureStems = map[string]string{}

func init() {
	for _, p := range Prefectures {
		if p == "北海道" {
			continue
		}
		// Only the final suffix rune is dropped: 京都府 must stem to 京都, not 京.
		for _, suffix := range []string{"都", "道", "府", "県"} {
			if strings.HasSuffix(p, suffix) {
				prefectureStems[strings.TrimSuffix(p, suffix)] = p
				break
			}
		}
	}
}

// MatchPrefecture finds a prefecture at the start of text and returns the
// official name and the length in bytes of the matched prefix. Exact official
// names win over suffix-dropped stems; a stem immediately followed by 市 is
// not treated as a prefecture (大阪市... is a city mention, not 大阪府).
func MatchPrefecture(text string) (name string, prefixLen int) {
	for _, p := range Prefectures {
		if strings.HasPrefix(text, p) {
			return p, len(p)
		}
	}
	for stem, official := range prefectureStems {
		if !strings.HasPrefix(text, stem) {
			continue
		}
		rest := text[len(stem):]
		if strings.HasPrefix(rest, "市") {
			continue
		}
		return official, len(stem)
	}
	return "", 0
}

// MatchDesignatedCity reports the designated city found at the start of text
// along with its governing prefecture.
func MatchDesignatedCity(text string) (city, prefecture string, ok bool) {
	for c, p := range DesignatedCities {
		if strings.HasPrefix(text, c) {
			return c, p, true
		}
	}
	return "", "", false
}
