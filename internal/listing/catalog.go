package listing

import "strings"

// ServiceType is a predefined car service that users search for.
type ServiceType struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

const maxSuggestions = 8

var serviceTypes = []ServiceType{
	{ID: "autoopravna", Name: "Autoopravna", Category: "Opravy", Keywords: []string{"autoopravna", "oprava", "servis", "motor", "brzdy", "převodovka"}},
	{ID: "vymena-oleje", Name: "Výměna oleje", Category: "Údržba", Keywords: []string{"výměna oleje", "olej", "motorový olej", "servis"}},
	{ID: "myti-auta", Name: "Mytí auta", Category: "Čištění", Keywords: []string{"mytí", "umývání", "car wash", "čištění", "ruční mytí"}},
	{ID: "pneuservis", Name: "Pneuservis", Category: "Pneumatiky", Keywords: []string{"pneumatiky", "pneuservis", "přezutí", "vyvážení", "geometrie"}},
	{ID: "diagnostika", Name: "Diagnostika", Category: "Kontrola", Keywords: []string{"diagnostika", "kontrola", "chybové kódy", "STK", "emise"}},
	{ID: "detailing", Name: "Detailing", Category: "Čištění", Keywords: []string{"detailing", "leštění", "renovace", "ochranné fólie", "keramika"}},
	{ID: "klimatizace", Name: "Klimatizace", Category: "Komfort", Keywords: []string{"klimatizace", "chlazení", "plnění klimatizace", "AC servis"}},
	{ID: "brzdy", Name: "Brzdy", Category: "Bezpečnost", Keywords: []string{"brzdy", "brzdové kotouče", "destičky", "brzdová kapalina"}},
	{ID: "odtahova-sluzba", Name: "Odtahová služba", Category: "Nouzové služby", Keywords: []string{"odtah", "odtahová služba", "pomoc na silnici", "havárie"}},
	{ID: "elektrika", Name: "Elektrika", Category: "Opravy", Keywords: []string{"elektrika", "elektrické systémy", "baterie", "alternátor", "startér"}},
	{ID: "karoserie", Name: "Karosářské práce", Category: "Opravy", Keywords: []string{"karoserie", "lakování", "klempířské práce", "nehoda"}},
	{ID: "stk", Name: "STK - Státní technická kontrola", Category: "Kontrola", Keywords: []string{"STK", "státní technická kontrola", "kontrola", "technická", "pravidelná kontrola", "povinná kontrola"}},
	{ID: "ek", Name: "EK - Měření emisí", Category: "Kontrola", Keywords: []string{"EK", "emise", "měření emisí", "emisní kontrola", "výfuk", "katalyzátor"}},
	{ID: "stk-ek", Name: "STK + EK", Category: "Kontrola", Keywords: []string{"STK EK", "STK a EK", "technická kontrola + emise", "kompletní kontrola", "povinné kontroly"}},
	{ID: "predstk", Name: "PředSTK kontrola", Category: "Kontrola", Keywords: []string{"předSTK", "příprava na STK", "kontrola před STK", "prověrka", "předběžná kontrola"}},
	{ID: "motorova-brzda", Name: "Kontrola motorové brzdy", Category: "Kontrola", Keywords: []string{"motorová brzda", "brzda motoru", "kontrola brzd", "brzdný systém", "EK brzda"}},
}

// ServiceTypes returns a copy of the service-type catalogue.
func ServiceTypes() []ServiceType {
	out := make([]ServiceType, len(serviceTypes))
	copy(out, serviceTypes)
	return out
}

// LookupServiceType finds a catalogue entry by id.
func LookupServiceType(id string) (ServiceType, bool) {
	id = strings.TrimSpace(id)
	for _, st := range serviceTypes {
		if st.ID == id {
			return st, true
		}
	}
	return ServiceType{}, false
}

// Suggest returns up to eight service types whose name or keywords contain q.
// Queries shorter than two characters yield nothing.
func Suggest(q string) []ServiceType {
	needle := strings.ToLower(strings.TrimSpace(q))
	if len([]rune(needle)) < 2 {
		return []ServiceType{}
	}

	out := make([]ServiceType, 0, maxSuggestions)
	for _, st := range serviceTypes {
		if matchesServiceType(st, needle) {
			out = append(out, st)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func matchesServiceType(st ServiceType, needle string) bool {
	if strings.Contains(strings.ToLower(st.Name), needle) {
		return true
	}
	for _, kw := range st.Keywords {
		if strings.Contains(strings.ToLower(kw), needle) {
			return true
		}
	}
	return false
}
