package market

import "time"

// IST is the NSE trading calendar zone. A fixed offset, not a tzdata lookup,
// so behavior does not depend on the host zone database.
var IST = time.FixedZone("IST", 5*3600+30*60)

// SessionWindow is the daily trading window on the exchange calendar,
// Monday through Friday. Bounds are inclusive at minute resolution.
type SessionWindow struct {
	StartHour   int `yaml:"start_hour"`
	StartMinute int `yaml:"start_minute"`
	EndHour     int `yaml:"end_hour"`
	EndMinute   int `yaml:"end_minute"`
}

// NSEWindow is the regular cash-market session, 09:15 to 15:30 IST.
func NSEWindow() SessionWindow {
	return SessionWindow{StartHour: 9, StartMinute: 15, EndHour: 15, EndMinute: 30}
}

// Contains reports whether t falls inside the window on a weekday,
// evaluated on the IST calendar.
func (w SessionWindow) Contains(t time.Time) bool {
	t = t.In(IST)
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	hm := t.Hour()*60 + t.Minute()
	return hm >= w.StartHour*60+w.StartMinute && hm <= w.EndHour*60+w.EndMinute
}
