package services

import (
	"fmt"
	"strings"
	"time"

	"aeropark/internal/domain"
	"aeropark/internal/utils"
)

// maxNumberProbes bounds the collision probe so a pathological data set
// cannot loop the request forever.
const maxNumberProbes = 500

type numberStore interface {
	NumberExists(number string) (bool, error)
}

// GenerateReservationNumber derives the human-readable booking id
// "{YYYY-MM-DD}-{FLIGHT}" from the outbound leg, probing "-1", "-2", ...
// suffixes until an untaken value is found. The value is only unique at
// the moment of check; the insert's unique index settles races.
func GenerateReservationNumber(store numberStore, dateAller time.Time, flightNumber string) (string, error) {
	base := utils.FormatDate(dateAller) + "-" + strings.ToUpper(strings.TrimSpace(flightNumber))

	number := base
	for probe := 1; ; probe++ {
		taken, err := store.NumberExists(number)
		if err != nil {
			return "", domain.InternalError{Msg: "reservation number lookup failed", Err: err}
		}
		if !taken {
			return number, nil
		}
		if probe > maxNumberProbes {
			return "", domain.ConflictError{
				Resource: "reservation number",
				Msg:      fmt.Sprintf("no free number after %d attempts for %s", maxNumberProbes, base),
			}
		}
		number = fmt.Sprintf("%s-%d", base, probe)
	}
}
