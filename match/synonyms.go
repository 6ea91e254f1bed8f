package match

// DefaultSynonyms is the manufacturing-domain synonym table: canonical term
// to its reported variants. The table is injected into a Normalizer as
// immutable configuration; tests substitute smaller tables.
var DefaultSynonyms = map[string][]string{
	"brake":       {"braking", "brk"},
	"seat":        {"seating", "st"},
	"belt":        {"seatbelt", "seat belt"},
	"window":      {"windshield", "glass", "pane"},
	"wiper":       {"wipers"},
	"lock":        {"locked", "locking", "unlocked"},
	"bolt":        {"bolts", "screw", "fastener"},
	"missing":     {"absent", "not present", "shortage"},
	"damage":      {"damaged", "broken", "crack", "cracked", "torn"},
	"noise":       {"noisy", "vibration", "rattle", "squeak"},
	"leak":        {"leaking", "leakage"},
	"error":       {"wrong", "incorrect", "mismatch"},
	"assy":        {"assembly", "asy"},
	"insecure":    {"loose", "not secure", "unsecure"},
	"malfunction": {"not working", "failure", "defective", "faulty"},
	"torque":      {"tightening", "tq"},
	"lamp":        {"light", "bulb", "headlamp", "headlight"},
	"paint":       {"painting", "painted", "colour", "color"},
	"wheel":       {"tyre", "tire", "rim"},
	"connector":   {"connect", "connection", "plug"},
	"harness":     {"wiring", "wire", "cable"},
	"front":       {"fr", "frt"},
	"rear":        {"rr"},
	"left":        {"lh", "lhf", "lhr"},
	"right":       {"rh", "rhf", "rhr"},
}

// stationPrefixes maps the leading character of a station code to its
// manufacturing area. Used by the station bonus when codes differ but share
// a known area prefix.
var stationPrefixes = map[byte]string{
	't': "trim",
	'c': "chassis",
	'f': "final",
	'p': "paint",
}
