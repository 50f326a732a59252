package location

import domaintypes "profilewizard/internal/domain/types"

type option = domaintypes.LocationOption

var defaultCountries = []option{
	{ID: "us", Name: "United States"},
	{ID: "ca", Name: "Canada"},
	{ID: "uk", Name: "United Kingdom"},
	{ID: "in", Name: "India"},
}

// Keyed by country id.
var defaultStates = map[string][]option{
	"us": {
		{ID: "ca", Name: "California"},
		{ID: "ny", Name: "New York"},
		{ID: "tx", Name: "Texas"},
	},
	"ca": {
		{ID: "on", Name: "Ontario"},
		{ID: "bc", Name: "British Columbia"},
		{ID: "qc", Name: "Quebec"},
	},
	"uk": {
		{ID: "en", Name: "England"},
		{ID: "sc", Name: "Scotland"},
		{ID: "wa", Name: "Wales"},
	},
	"in": {
		{ID: "mh", Name: "Maharashtra"},
		{ID: "ka", Name: "Karnataka"},
		{ID: "dl", Name: "Delhi"},
	},
}

// Keyed by state id. State ids are only unique within this table, which is
// how the lookup has always been keyed.
var defaultCities = map[string][]option{
	"ca": {
		{ID: "la", Name: "Los Angeles"},
		{ID: "sf", Name: "San Francisco"},
		{ID: "sd", Name: "San Diego"},
	},
	"ny": {
		{ID: "nyc", Name: "New York City"},
		{ID: "buf", Name: "Buffalo"},
		{ID: "roc", Name: "Rochester"},
	},
	"on": {
		{ID: "tor", Name: "Toronto"},
		{ID: "ott", Name: "Ottawa"},
		{ID: "ham", Name: "Hamilton"},
	},
	"mh": {
		{ID: "mum", Name: "Mumbai"},
		{ID: "pun", Name: "Pune"},
		{ID: "nag", Name: "Nagpur"},
	},
	"ka": {
		{ID: "ban", Name: "Bangalore"},
		{ID: "mys", Name: "Mysore"},
		{ID: "hub", Name: "Hubli"},
	},
	"dl": {
		{ID: "del", Name: "Delhi"},
		{ID: "gur", Name: "Gurgaon"},
		{ID: "noi", Name: "Noida"},
	},
}
