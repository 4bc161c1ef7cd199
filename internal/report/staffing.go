// Staffing report: who works which event, and in what role.
package report

import "github.com/stagefront/marquee/internal/store"

func init() {
	Register("staffing", func() Report { return staffingReport{} })
}

type staffingReport struct{}

func (staffingReport) Title() string { return "Event Staffing" }

func (staffingReport) Run(st *store.Store) ([]store.Record, error) {
	return st.SelectAll(
		[]string{store.TableEvent, store.TablePeople, store.TableStaffAssign},
		[]string{
			"Event.Name AS Event",
			"People.FirstName",
			"People.LastName",
			"StaffAssign.Role",
		},
		[]string{
			"StaffAssign.Event=Event.id",
			"StaffAssign.Person=People.id",
		},
	)
}
