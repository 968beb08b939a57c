package version

const (
	Phase0 = iota
	Altair
	Bellatrix
	Capella
	Deneb
	Electra
)

var versionToString = map[int]string{
	Phase0:    "phase0",
	Altair:    "altair",
	Bellatrix: "bellatrix",
	Capella:   "capella",
	Deneb:     "deneb",
	Electra:   "electra",
}

// stringToVersion is populated in init().
var stringToVersion = map[string]int{}

// String returns a human-readable name for the given version.
func String(version int) string {
	name, ok := versionToString[version]
	if !ok {
		return "unknown version"
	}
	return name
}

// FromString translates a canonical version name to the version number.
func FromString(name string) (int, bool) {
	v, ok := stringToVersion[name]
	return v, ok
}

func init() {
	for v, s := range versionToString {
		stringToVersion[s] = v
	}
}
