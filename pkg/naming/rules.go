package naming

// Rule is one substring substitution applied to a summary-derived name.
// The name is wrapped in underscores before the table runs, so a pattern
// that starts and ends with "_" only matches whole words.
type Rule struct {
	Pattern     string
	Replacement string
}

// SummaryRules is applied in order. Each rule is repeated until its pattern
// no longer occurs, so Replacement must never contain Pattern.
var SummaryRules = []Rule{
	{"_retrieves_", "_get_"},
	{"_retrieve_", "_get_"},
	{"_fetches_", "_get_"},
	{"_fetch_", "_get_"},
	{"_returns_", "_get_"},
	{"_return_", "_get_"},
	{"_gets_", "_get_"},
	{"_lists_", "_list_"},
	{"_creates_", "_create_"},
	{"_updates_", "_update_"},
	{"_deletes_", "_delete_"},
	{"_removes_", "_delete_"},
	{"_remove_", "_delete_"},
	{"_searches_", "_search_"},
	{"_validates_", "_validate_"},
	{"_application", "_app"},
	{"_information_", "_info_"},
	{"_configuration", "_config"},
	{"_identifier_", "_id_"},
	{"_specified_", "_"},
	{"_existing_", "_"},
	{"_given_", "_"},
	{"_new_", "_"},
	{"_all_", "_"},
	{"_the_", "_"},
	{"_an_", "_"},
	{"_a_", "_"},
	{"_by_id_", "_"},
}

// PreferredPrefixes lists, by priority, the verbs a generated name should
// start with.
var PreferredPrefixes = []string{
	"get_",
	"list_",
	"create_",
	"update_",
	"delete_",
	"search_",
	"query_",
	"validate_",
}

// PathPrefixes maps an HTTP verb to the prefix of the path-derived name.
// Verbs missing here use their lower-cased name.
var PathPrefixes = map[string]string{
	"GET":    "get_",
	"POST":   "create_",
	"PUT":    "update_",
	"PATCH":  "update_",
	"DELETE": "delete_",
}
