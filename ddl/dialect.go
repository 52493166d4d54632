package ddl

import "fmt"

// Feature is a version-gated piece of DDL syntax
type Feature uint

const (
	// FeatureOwnerTo selects the standard ALTER TABLE ... OWNER TO variant
	FeatureOwnerTo Feature = 1 << iota
	// FeatureIdentityColumns enables GENERATED ... AS IDENTITY
	FeatureIdentityColumns
	// FeatureNativePartitioning enables PARTITION BY
	FeatureNativePartitioning
)

// String returns a readable name for the feature
func (f Feature) String() string {
	switch f {
	case FeatureOwnerTo:
		return "owner-to"
	case FeatureIdentityColumns:
		return "identity-columns"
	case FeatureNativePartitioning:
		return "native-partitioning"
	default:
		return fmt.Sprintf("feature(%d)", uint(f))
	}
}

// featureThresholds maps each feature to the first server_version_num that has it.
// New thresholds are added here only.
var featureThresholds = []struct {
	minVersion int
	feature    Feature
}{
	{minVersion: 90600, feature: FeatureOwnerTo},
	{minVersion: 100000, feature: FeatureIdentityColumns},
	{minVersion: 100000, feature: FeatureNativePartitioning},
}

// OwnerSyntax is the variant used to emit ownership changes
type OwnerSyntax int

const (
	// OwnerSyntaxLegacy annotates the owner change for servers before 9.6
	OwnerSyntaxLegacy OwnerSyntax = iota
	// OwnerSyntaxStandard is the plain ALTER TABLE ... OWNER TO form
	OwnerSyntaxStandard
)

// Capabilities is the set of DDL features available at a server version
type Capabilities struct {
	Version  int
	features Feature
}

// ResolveDialect derives the capability set for a server_version_num value
// such as 120005 (12.5) or 90615 (9.6.15). Zero or negative yields the oldest set.
func ResolveDialect(version int) Capabilities {
	caps := Capabilities{Version: version}
	for _, threshold := range featureThresholds {
		if version >= threshold.minVersion {
			caps.features |= threshold.feature
		}
	}
	return caps
}

// OldestDialect is the most conservative capability set
func OldestDialect() Capabilities {
	return ResolveDialect(0)
}

// Has reports whether the feature is available
func (c Capabilities) Has(feature Feature) bool {
	return c.features&feature == feature
}

func (c Capabilities) SupportsIdentityColumns() bool {
	return c.Has(FeatureIdentityColumns)
}

func (c Capabilities) SupportsNativePartitioning() bool {
	return c.Has(FeatureNativePartitioning)
}

func (c Capabilities) SupportsOwnerTo() bool {
	return c.Has(FeatureOwnerTo)
}

// OwnerSyntax returns the owner-change variant for this dialect
func (c Capabilities) OwnerSyntax() OwnerSyntax {
	if c.SupportsOwnerTo() {
		return OwnerSyntaxStandard
	}
	return OwnerSyntaxLegacy
}

// Features lists the enabled features in threshold order
func (c Capabilities) Features() []Feature {
	var features []Feature
	seen := Feature(0)
	for _, threshold := range featureThresholds {
		if c.Has(threshold.feature) && seen&threshold.feature == 0 {
			features = append(features, threshold.feature)
			seen |= threshold.feature
		}
	}
	return features
}

// FormatVersion renders a server_version_num as a dotted version string
func FormatVersion(version int) string {
	if version <= 0 {
		return "unknown"
	}
	major := version / 10000
	if major >= 10 {
		return fmt.Sprintf("%d.%d", major, version%10000)
	}
	return fmt.Sprintf("%d.%d.%d", major, (version/100)%100, version%100)
}
