// Inventory report: per-site equipment quantity adjustments.
package report

import "github.com/stagefront/marquee/internal/store"

func init() {
	Register("inventory", func() Report { return inventoryReport{} })
}

type inventoryReport struct{}

func (inventoryReport) Title() string { return "Site Equipment Inventory" }

func (inventoryReport) Run(st *store.Store) ([]store.Record, error) {
	return st.SelectAll(
		[]string{store.TableEquipment, store.TableSite, store.TableEquipmentAdjust},
		[]string{
			"Site.Name AS Site",
			"Equipment.Name AS Equipment",
			"EquipmentAdjust.Quantity",
		},
		[]string{
			"EquipmentAdjust.Piece=Equipment.id",
			"EquipmentAdjust.Site=Site.id",
		},
	)
}
