package entity

// AssetInfo holds the display and precision metadata of one asset.
// Precision is the number of base-unit decimal places (18 for ETH, 8 for
// BTC).
type AssetInfo struct {
	ID        AssetID `json:"assetId" yaml:"assetId"`
	Symbol    string  `json:"symbol" yaml:"symbol"`
	Name      string  `json:"name" yaml:"name"`
	Precision uint8   `json:"precision" yaml:"precision"`
}
