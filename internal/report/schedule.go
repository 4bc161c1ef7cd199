// Schedule report: every event with its site, room and speaker.
package report

import "github.com/stagefront/marquee/internal/store"

func init() {
	Register("schedule", func() Report { return scheduleReport{} })
}

type scheduleReport struct{}

func (scheduleReport) Title() string { return "Conference Schedule" }

func (scheduleReport) Run(st *store.Store) ([]store.Record, error) {
	return st.SelectAll(
		[]string{store.TableEvent, store.TableRoom, store.TablePeople, store.TableSite},
		[]string{
			"Site.Name AS Site",
			"Room.Name AS Room",
			"Event.Name",
			"Event.Start",
			"Event.End",
			"People.FirstName",
			"People.LastName",
		},
		[]string{
			"Room.Site=Site.id",
			"Event.Room=Room.id",
			"Event.Speaker=People.id",
		},
	)
}
