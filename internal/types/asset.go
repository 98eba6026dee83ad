package types

import "fmt"

// AssetIdentifier names a fungible or non-fungible asset defined by a
// contract: the pair (contract name, asset name). It is comparable, so it
// is used directly as a map key inside AssetMap.
type AssetIdentifier struct {
	ContractName string
	AssetName    string
}

// String renders the identifier as "<contract>.<asset>", used in AssetMap's
// diagnostic Display form and in log lines.
func (a AssetIdentifier) String() string {
	return fmt.Sprintf("%s.%s", a.ContractName, a.AssetName)
}
