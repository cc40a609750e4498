package enum

// VendorType classifies a vendor in the supply chain
type VendorType string

const (
	VendorTypeManufacturer VendorType = "manufacturer"
	VendorTypeDistributor  VendorType = "distributor"
	VendorTypeImporter     VendorType = "importer"
	VendorTypeWholesaler   VendorType = "wholesaler"
)

// IsValid checks whether the vendor type is one of the known values
func (t VendorType) IsValid() bool {
	switch t {
	case VendorTypeManufacturer, VendorTypeDistributor, VendorTypeImporter, VendorTypeWholesaler:
		return true
	}
	return false
}
