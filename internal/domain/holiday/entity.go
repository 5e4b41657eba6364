package holiday

import "time"

type Holiday struct {
	ID          int64
	Name        string
	Date        time.Time
	Description string
}
