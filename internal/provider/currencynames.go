package provider

// currencyNamesToCode maps free-text currency descriptions, as published
// on scraped central-bank pages, to canonical currency codes. The UAE and
// Egyptian central banks publish names rather than codes, in English on
// one page and Arabic on the other, so both scripts map onto the same
// code set. Several spellings are aliases of the same code.
var currencyNamesToCode = map[string]string{
	"US Dollar":                "USD",
	"UAE Dirham":               "AED",
	"Argentine Peso":           "ARS",
	"Australian Dollar":        "AUD",
	"Bangladesh Taka":          "BDT",
	"Bahrani Dinar":            "BHD",
	"Bahraini Dinar":           "BHD",
	"Brunei Dollar":            "BND",
	"Brazilian Real":           "BRL",
	"Botswana Pula":            "BWP",
	"Belarus Rouble":           "BYN",
	"Canadian Dollar":          "CAD",
	"Swiss Franc":              "CHF",
	"Chilean Peso":             "CLP",
	"Chinese Yuan - Offshore":  "CNY",
	"Chinese Yuan":             "CNY",
	"Colombian Peso":           "COP",
	"Czech Koruna":             "CZK",
	"Danish Krone":             "DKK",
	"Algerian Dinar":           "DZD",
	"Egypt Pound":              "EGP",
	"Euro":                     "EUR",
	"GB Pound":                 "GBP",
	"Pound Sterling":           "GBP",
	"Hongkong Dollar":          "HKD",
	"Hungarian Forint":         "HUF",
	"Indonesia Rupiah":         "IDR",
	"Indian Rupee":             "INR",
	"Iceland Krona":            "ISK",
	"Jordan Dinar":             "JOD",
	"Jordanian Dinar":          "JOD",
	"Japanese Yen":             "JPY",
	"Japanese Yen 100":         "JPY",
	"Kenya Shilling":           "KES",
	"Korean Won":               "KRW",
	"Kuwaiti Dinar":            "KWD",
	"Kazakhstan Tenge":         "KZT",
	"Lebanon Pound":            "LBP",
	"Sri Lanka Rupee":          "LKR",
	"Moroccan Dirham":          "MAD",
	"Macedonia Denar":          "MKD",
	"Mexican Peso":             "MXN",
	"Malaysia Ringgit":         "MYR",
	"Nigerian Naira":           "NGN",
	"Norwegian Krone":          "NOK",
	"NewZealand Dollar":        "NZD",
	"Omani Rial":               "OMR",
	"Omani Riyal":              "OMR",
	"Peru Sol":                 "PEN",
	"Philippine Piso":          "PHP",
	"Pakistan Rupee":           "PKR",
	"Polish Zloty":             "PLN",
	"Qatari Riyal":             "QAR",
	"Serbian Dinar":            "RSD",
	"Russia Rouble":            "RUB",
	"Saudi Riyal":              "SAR",
	"Swedish Krona":            "SWK",
	"Singapore Dollar":         "SGD",
	"Thai Baht":                "THB",
	"Tunisian Dinar":           "TND",
	"Turkish Lira":             "TRY",
	"Trin Tob Dollar":          "TTD",
	"Taiwan Dollar":            "TWD",
	"Tanzania Shilling":        "TZS",
	"Uganda Shilling":          "UGX",
	"Vietnam Dong":             "VND",
	"South Africa Rand":        "ZAR",
	"Zambian Kwacha":           "ZMW",
	"دولار امريكي":             "USD",
	"بيسو ارجنتيني":            "ARS",
	"دولار استرالي":            "AUD",
	"تاكا بنغلاديشية":          "BDT",
	"دينار بحريني":             "BHD",
	"دولار بروناي":             "BND",
	"ريال برازيلي":             "BRL",
	"بولا بوتسواني":            "BWP",
	"روبل بلاروسي":             "BYN",
	"دولار كندي":               "CAD",
	"فرنك سويسري":              "CHF",
	"بيزو تشيلي":               "CLP",
	"يوان صيني - الخارج":       "CNY",
	"يوان صيني":                "CNY",
	"بيزو كولومبي":             "COP",
	"كرونة تشيكية":             "CZK",
	"كرون دانماركي":            "DKK",
	"دينار جزائري":             "DZD",
	"جينيه مصري":               "EGP",
	"يورو":                     "EUR",
	"جنيه استرليني":            "GBP",
	"دولار هونج كونج":          "HKD",
	"فورنت هنغاري":             "HUF",
	"روبية اندونيسية":          "IDR",
	"روبية هندية":              "INR",
	"كرونة آيسلندية":           "ISK",
	"دينار أردني":              "JOD",
	"ين ياباني":                "JPY",
	"شلن كيني":                 "KES",
	"ون كوري":                  "KRW",
	"دينار كويتي":              "KWD",
	"تينغ كازاخستاني":          "KZT",
	"ليرة لبنانية":             "LBP",
	"روبية سريلانكي":           "LKR",
	"درهم مغربي":               "MAD",
	"دينار مقدوني":             "MKD",
	"بيسو مكسيكي":              "MXN",
	"رينغيت ماليزي":            "MYR",
	"نيرا نيجيري":              "NGN",
	"كرون نرويجي":              "NOK",
	"دولار نيوزيلندي":          "NZD",
	"ريال عماني":               "OMR",
	"سول بيروفي":               "PEN",
	"بيسو فلبيني":              "PHP",
	"روبية باكستانية":          "PKR",
	"زلوتي بولندي":             "PLN",
	"ريال قطري":                "QAR",
	"دينار صربي":               "RSD",
	"روبل روسي":                "RUB",
	"ريال سعودي":               "SAR",
	"كرونة سويدية":             "SWK",
	"دولار سنغافوري":           "SGD",
	"بات تايلندي":              "THB",
	"دينار تونسي":              "TND",
	"ليرة تركية":               "TRY",
	"دولار تريندادي":           "TTD",
	"دولار تايواني":            "TWD",
	"شلن تنزاني":               "TZS",
	"شلن اوغندي":               "UGX",
	"دونغ فيتنامي":             "VND",
	"راند جنوب أفريقي":         "ZAR",
	"كواشا زامبي":              "ZMW",
}

// LookupCurrencyName resolves a free-text currency description to its
// canonical code. A miss means "currency not tracked", never an error;
// scraping adapters silently skip rows that do not resolve.
func LookupCurrencyName(name string) (string, bool) {
	code, ok := currencyNamesToCode[name]
	return code, ok
}
