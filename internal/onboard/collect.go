package onboard

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/HerbHall/gangway/internal/driver"
)

var titleCaser = cases.Title(language.English)

// CollectFacts opens a driver session against the device and retrieves
// identity facts plus the interface address map. Vendor is normalized to
// title case and model to lower case; serial is passed through.
// Failure mapping: session open failure -> fail-login, command
// execution -> fail-execute, anything else -> fail-general.
func CollectFacts(ctx context.Context, driverName string, req Request) (*DeviceFacts, error) {
	if !driver.Supported(driverName) {
		return nil, Errorf(ReasonGeneral, "driver %s not supported", driverName)
	}

	dev, err := driver.New(driverName, driver.Target{
		Host:     req.IPAddress,
		Port:     req.Port,
		Username: req.Username,
		Password: req.Password,
		Timeout:  req.Timeout,
	})
	if err != nil {
		return nil, Errorf(ReasonGeneral, "driver %s not supported", driverName)
	}

	if err := dev.Open(ctx); err != nil {
		if errors.Is(err, driver.ErrAuth) {
			return nil, WrapErr(ReasonLogin, err, "credentials rejected by %s", req.IPAddress)
		}
		// Reachability was proven before collection, so any failure to
		// establish the session counts as a login failure.
		return nil, WrapErr(ReasonLogin, err, "unable to open session to %s", req.IPAddress)
	}
	defer dev.Close()

	facts, err := dev.Facts(ctx)
	if err != nil {
		return nil, mapDriverErr(err, "collect facts from %s", req.IPAddress)
	}

	ipIfs, err := dev.InterfaceIPs(ctx)
	if err != nil {
		return nil, mapDriverErr(err, "collect interface addresses from %s", req.IPAddress)
	}

	return &DeviceFacts{
		Hostname:     facts.Hostname,
		Vendor:       titleCaser.String(facts.Vendor),
		Model:        strings.ToLower(facts.Model),
		SerialNumber: facts.SerialNumber,
		InterfaceIPs: ipIfs,
	}, nil
}

func mapDriverErr(err error, format string, args ...any) error {
	if errors.Is(err, driver.ErrCommand) {
		return WrapErr(ReasonExecute, err, format, args...)
	}
	return WrapErr(ReasonGeneral, err, format, args...)
}
