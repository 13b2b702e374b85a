package region

import (
	"shelternav/pkg/geo"
)

// FallbackEntry is one offline region anchor: the principal city of a
// first-level administrative region.
type FallbackEntry struct {
	Code  Code
	Name  string
	Point geo.Point
}

// prefectureCapitals anchors every Japanese prefecture by its capital.
// Used when the online resolution chain is unavailable.
var prefectureCapitals = []FallbackEntry{
	{"011002", "北海道札幌市", geo.Point{Lat: 43.0642, Lon: 141.3469}},
	{"022012", "青森県青森市", geo.Point{Lat: 40.8244, Lon: 140.7400}},
	{"032018", "岩手県盛岡市", geo.Point{Lat: 39.7036, Lon: 141.1527}},
	{"041009", "宮城県仙台市", geo.Point{Lat: 38.2682, Lon: 140.8694}},
	{"052019", "秋田県秋田市", geo.Point{Lat: 39.7186, Lon: 140.1024}},
	{"062014", "山形県山形市", geo.Point{Lat: 38.2404, Lon: 140.3633}},
	{"072079", "福島県福島市", geo.Point{Lat: 37.7503, Lon: 140.4676}},
	{"082015", "茨城県水戸市", geo.Point{Lat: 36.3418, Lon: 140.4468}},
	{"092011", "栃木県宇都宮市", geo.Point{Lat: 36.5657, Lon: 139.8836}},
	{"102016", "群馬県前橋市", geo.Point{Lat: 36.3911, Lon: 139.0608}},
	{"111007", "埼玉県さいたま市", geo.Point{Lat: 35.8569, Lon: 139.6489}},
	{"121002", "千葉県千葉市", geo.Point{Lat: 35.6047, Lon: 140.1233}},
	{"131016", "東京都千代田区", geo.Point{Lat: 35.6895, Lon: 139.6917}},
	{"141003", "神奈川県横浜市", geo.Point{Lat: 35.4437, Lon: 139.6380}},
	{"151009", "新潟県新潟市", geo.Point{Lat: 37.9026, Lon: 139.0237}},
	{"162027", "富山県富山市", geo.Point{Lat: 36.6953, Lon: 137.2113}},
	{"172014", "石川県金沢市", geo.Point{Lat: 36.5946, Lon: 136.6256}},
	{"182010", "福井県福井市", geo.Point{Lat: 36.0651, Lon: 136.2216}},
	{"192015", "山梨県甲府市", geo.Point{Lat: 35.6638, Lon: 138.5684}},
	{"202011", "長野県長野市", geo.Point{Lat: 36.6513, Lon: 138.1810}},
	{"212016", "岐阜県岐阜市", geo.Point{Lat: 35.3912, Lon: 136.7222}},
	{"221309", "静岡県静岡市", geo.Point{Lat: 34.9769, Lon: 138.3831}},
	{"231002", "愛知県名古屋市", geo.Point{Lat: 35.1815, Lon: 136.9066}},
	{"242021", "三重県津市", geo.Point{Lat: 34.7303, Lon: 136.5086}},
	{"252018", "滋賀県大津市", geo.Point{Lat: 35.0044, Lon: 135.8686}},
	{"261009", "京都府京都市", geo.Point{Lat: 35.0116, Lon: 135.7681}},
	{"271004", "大阪府大阪市", geo.Point{Lat: 34.6937, Lon: 135.5023}},
	{"281000", "兵庫県神戸市", geo.Point{Lat: 34.6901, Lon: 135.1955}},
	{"292010", "奈良県奈良市", geo.Point{Lat: 34.6851, Lon: 135.8050}},
	{"302015", "和歌山県和歌山市", geo.Point{Lat: 34.2261, Lon: 135.1675}},
	{"312011", "鳥取県鳥取市", geo.Point{Lat: 35.5014, Lon: 134.2377}},
	{"322016", "島根県松江市", geo.Point{Lat: 35.4723, Lon: 133.0505}},
	{"331007", "岡山県岡山市", geo.Point{Lat: 34.6617, Lon: 133.9345}},
	{"341002", "広島県広島市", geo.Point{Lat: 34.3965, Lon: 132.4596}},
	{"352012", "山口県山口市", geo.Point{Lat: 34.1858, Lon: 131.4706}},
	{"362018", "徳島県徳島市", geo.Point{Lat: 34.0658, Lon: 134.5595}},
	{"372013", "香川県高松市", geo.Point{Lat: 34.3401, Lon: 134.0434}},
	{"382019", "愛媛県松山市", geo.Point{Lat: 33.8416, Lon: 132.7657}},
	{"392014", "高知県高知市", geo.Point{Lat: 33.5597, Lon: 133.5311}},
	{"401307", "福岡県福岡市", geo.Point{Lat: 33.6064, Lon: 130.4183}},
	{"412015", "佐賀県佐賀市", geo.Point{Lat: 33.2495, Lon: 130.2993}},
	{"422011", "長崎県長崎市", geo.Point{Lat: 32.7503, Lon: 129.8777}},
	{"431001", "熊本県熊本市", geo.Point{Lat: 32.7898, Lon: 130.7417}},
	{"442011", "大分県大分市", geo.Point{Lat: 33.2382, Lon: 131.6126}},
	{"452017", "宮崎県宮崎市", geo.Point{Lat: 31.9111, Lon: 131.4239}},
	{"462012", "鹿児島県鹿児島市", geo.Point{Lat: 31.5602, Lon: 130.5581}},
	{"472018", "沖縄県那覇市", geo.Point{Lat: 26.2124, Lon: 127.6809}},
}

// nearestFallback returns the table entry closest to pt by great-circle
// distance. Only fails on an empty table.
func nearestFallback(table []FallbackEntry, pt geo.Point) (FallbackEntry, float64, error) {
	if len(table) == 0 {
		return FallbackEntry{}, 0, ErrNoFallback
	}

	best := table[0]
	bestDist := geo.Distance(pt, best.Point)
	for _, e := range table[1:] {
		if d := geo.Distance(pt, e.Point); d < bestDist {
			bestDist = d
			best = e
		}
	}
	return best, bestDist, nil
}
