package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kavia-common/netdevice-api/model/database"
)

// Device type values.
const (
	TypeRouter = "router"
	TypeSwitch = "switch"
	TypeServer = "server"
)

// Device status values.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
	StatusUnknown = "unknown"
)

// Device is the API-facing shape of a device record.
type Device struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	IPAddress   string `json:"ip_address"`
	Type        string `json:"type"`
	Location    string `json:"location,omitempty"`
	Status      string `json:"status"`
	LastChecked string `json:"last_checked,omitempty"`
}

// DeviceList is the listing envelope returned by GET /devices.
type DeviceList struct {
	Devices []Device `json:"data"`
	Total   int      `json:"count"`
}

// RestError is the JSON error envelope for all non-2xx responses.
type RestError struct {
	Code    int               `json:"code"`
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (d *Device) TranslateToAPI(dbDevice database.Device) {
	d.ID = dbDevice.ID.Hex()
	d.Name = dbDevice.Name
	d.IPAddress = dbDevice.IPAddress
	d.Type = dbDevice.Type
	d.Location = dbDevice.Location
	d.Status = dbDevice.Status
	d.LastChecked = dbDevice.LastChecked
}

func (d Device) TranslateToDB() database.Device {
	dbDevice := database.Device{
		Name:        d.Name,
		IPAddress:   d.IPAddress,
		Type:        d.Type,
		Location:    d.Location,
		Status:      d.Status,
		LastChecked: d.LastChecked,
	}
	if oid, err := primitive.ObjectIDFromHex(d.ID); err == nil {
		dbDevice.ID = oid
	}
	return dbDevice
}

func (l *DeviceList) TranslateToAPI(dbDevices []database.Device) {
	l.Devices = make([]Device, 0, len(dbDevices))
	for _, dbDevice := range dbDevices {
		var dvc Device
		dvc.TranslateToAPI(dbDevice)
		l.Devices = append(l.Devices, dvc)
	}
	l.Total = len(l.Devices)
}

// DeviceFromFragment builds a store-ready device from a fragment returned by
// ValidateDevice in create mode. Status defaults to unknown when the payload
// omitted it.
func DeviceFromFragment(fragment map[string]any) database.Device {
	dbDevice := database.Device{Status: StatusUnknown}
	if v, ok := fragment["name"].(string); ok {
		dbDevice.Name = v
	}
	if v, ok := fragment["ip_address"].(string); ok {
		dbDevice.IPAddress = v
	}
	if v, ok := fragment["type"].(string); ok {
		dbDevice.Type = v
	}
	if v, ok := fragment["location"].(string); ok {
		dbDevice.Location = v
	}
	if v, ok := fragment["status"].(string); ok {
		dbDevice.Status = v
	}
	if v, ok := fragment["last_checked"].(string); ok {
		dbDevice.LastChecked = v
	}
	return dbDevice
}
