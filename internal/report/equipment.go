// Equipment report: pieces assigned to events, with location and timing.
package report

import "github.com/stagefront/marquee/internal/store"

func init() {
	Register("equipment", func() Report { return equipmentReport{} })
}

type equipmentReport struct{}

func (equipmentReport) Title() string { return "Equipment Assignments" }

func (equipmentReport) Run(st *store.Store) ([]store.Record, error) {
	return st.SelectAll(
		[]string{store.TableEvent, store.TableRoom, store.TableSite, store.TableEquipment, store.TableEquipmentAssign},
		[]string{
			"Equipment.Name AS Equipment",
			"EquipmentAssign.Quantity",
			"Site.Name AS Site",
			"Room.Name AS Room",
			"Event.Name AS Event",
			"Event.Start",
			"Event.End",
		},
		[]string{
			"Room.Site=Site.id",
			"Event.Room=Room.id",
			"EquipmentAssign.Piece=Equipment.id",
			"EquipmentAssign.Event=Event.id",
		},
	)
}
