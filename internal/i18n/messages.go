package i18n

// key -> {en, sr}
var messages = map[string][2]string{
	"app.title":       {"Pocket", "Pocket"},
	"login.heading":   {"Welcome back", "Dobrodošli nazad"},
	"login.username":  {"Username", "Korisničko ime"},
	"login.submit":    {"Enter", "Uđi"},
	"logout":          {"Log out", "Odjava"},
	"balance":         {"Balance", "Stanje"},
	"streak":          {"day streak", "dana zaredom"},
	"earned":          {"Earned", "Zarađeno"},
	"spent":           {"Spent", "Potrošeno"},
	"next_tier":       {"Next tier", "Sledeći nivo"},
	"level":           {"Lvl", "Nivo"},
	"distribution":    {"Today", "Danas"},
	"performance":     {"Last 7 days", "Poslednjih 7 dana"},
	"goals":           {"Goals", "Ciljevi"},
	"add_goal":        {"Add goal", "Dodaj cilj"},
	"edit_goal":       {"Edit goal", "Izmeni cilj"},
	"no_goals":        {"No goals yet", "Još nema ciljeva"},
	"recurring":       {"Recurring", "Ponavljajuće"},
	"add_recurring":   {"Add recurring", "Dodaj ponavljajuće"},
	"no_activity":     {"No activity", "Nema aktivnosti"},
	"recent":          {"Recent", "Skorašnje"},
	"add_earn":        {"Earn", "Zaradi"},
	"add_spend":       {"Spend", "Potroši"},
	"edit":            {"Edit", "Izmeni"},
	"save":            {"Save", "Sačuvaj"},
	"amount":          {"Amount", "Iznos"},
	"description":     {"Description", "Opis"},
	"name":            {"Name", "Naziv"},
	"target":          {"Target", "Cilj"},
	"current":         {"Saved so far", "Ušteđeno"},
	"frequency":       {"Frequency", "Učestalost"},
	"daily":           {"Daily", "Dnevno"},
	"monthly":         {"Monthly", "Mesečno"},
	"goal":            {"Goal", "Cilj"},
	"no_goal":         {"No goal", "Bez cilja"},
	"currency":        {"Currency", "Valuta"},
	"error.invalid":   {"Please check the form and try again.", "Proverite formu i pokušajte ponovo."},
	"error.not_found": {"That item no longer exists.", "Ta stavka više ne postoji."},
}
