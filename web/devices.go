package web

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kavia-common/netdevice-api/db"
	"github.com/kavia-common/netdevice-api/model"
	"github.com/kavia-common/netdevice-api/ping"
)

func badRequest(ctx *gin.Context, message string, errs map[string]string) {
	ctx.JSON(http.StatusBadRequest, model.RestError{
		Code:    http.StatusBadRequest,
		Status:  http.StatusText(http.StatusBadRequest),
		Message: message,
		Errors:  errs,
	})
}

func notFound(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusNotFound, model.RestError{
		Code:    http.StatusNotFound,
		Status:  http.StatusText(http.StatusNotFound),
		Message: message,
	})
}

func conflict(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusConflict, model.RestError{
		Code:    http.StatusConflict,
		Status:  http.StatusText(http.StatusConflict),
		Message: message,
	})
}

func internalError(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusInternalServerError, model.RestError{
		Code:    http.StatusInternalServerError,
		Status:  http.StatusText(http.StatusInternalServerError),
		Message: message,
	})
}

// newDevice godoc
// @Summary      Create a new device
// @Description  Create a new device record. Name, ip_address, and type are required. Type must be one of:
// router,
// switch,
// server.
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        device  body      model.Device  true  "Device to create"
// @Success      201     {object}  map[string]model.Device
// @Failure      400     {object}  model.RestError
// @Failure      409     {object}  model.RestError
// @Failure      500     {object}  model.RestError
// @Router       /devices [post]
func (w *Web) newDevice(ctx *gin.Context) {
	var payload map[string]any
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		badRequest(ctx, "Request body must be a JSON object", nil)
		return
	}

	fragment, errs := model.ValidateDevice(payload, false)
	if len(errs) > 0 {
		badRequest(ctx, "Validation failed", errs)
		return
	}

	doc := model.DeviceFromFragment(fragment)
	if err := w.Store.CreateDevice(ctx.Request.Context(), &doc); err != nil {
		if errors.Is(err, db.ErrDuplicateIP) {
			conflict(ctx, "Device with the same ip_address already exists")
			return
		}
		slog.Error("create device failed", "error", err)
		internalError(ctx, "Database error")
		return
	}

	var dvc model.Device
	dvc.TranslateToAPI(doc)
	ctx.JSON(http.StatusCreated, gin.H{"data": dvc})
}

// listDevices godoc
// @Summary      List devices
// @Description  List devices with optional filters: exact match on status, case-insensitive substring match on name. Filters combine with AND.
// @Tags         devices
// @Produce      json
// @Param        status  query     string  false  "Filter by status (online, offline, unknown)"
// @Param        name    query     string  false  "Filter by name (substring match)"
// @Success      200     {object}  model.DeviceList
// @Failure      500     {object}  model.RestError
// @Router       /devices [get]
func (w *Web) listDevices(ctx *gin.Context) {
	status := ctx.Query("status")
	name := ctx.Query("name")

	devices, err := w.Store.GetDevices(ctx.Request.Context(), status, name)
	if err != nil {
		slog.Error("list devices failed", "error", err)
		internalError(ctx, "Database error")
		return
	}

	var list model.DeviceList
	list.TranslateToAPI(devices)
	ctx.JSON(http.StatusOK, list)
}

// getDeviceByID godoc
// @Summary      Get device by ID
// @Description  Fetch a single device by its ID.
// @Tags         devices
// @Produce      json
// @Param        id   path      string  true  "Device ID"
// @Success      200  {object}  map[string]model.Device
// @Failure      404  {object}  model.RestError
// @Failure      500  {object}  model.RestError
// @Router       /devices/{id} [get]
func (w *Web) getDeviceByID(ctx *gin.Context) {
	device, err := w.Store.GetDeviceByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			notFound(ctx, "Device not found")
			return
		}
		slog.Error("get device failed", "error", err)
		internalError(ctx, "Database error")
		return
	}

	var dvc model.Device
	dvc.TranslateToAPI(device)
	ctx.JSON(http.StatusOK, gin.H{"data": dvc})
}

// updateDevice godoc
// @Summary      Update an existing device
// @Description  Partially update a device. Only the provided fields are applied; at least one recognized field is required.
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id      path      string        true  "Device ID"
// @Param        device  body      model.Device  true  "Device fields to update"
// @Success      200     {object}  map[string]model.Device
// @Failure      400     {object}  model.RestError
// @Failure      404     {object}  model.RestError
// @Failure      409     {object}  model.RestError
// @Failure      500     {object}  model.RestError
// @Router       /devices/{id} [put]
func (w *Web) updateDevice(ctx *gin.Context) {
	var payload map[string]any
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		badRequest(ctx, "Request body must be a JSON object", nil)
		return
	}

	fragment, errs := model.ValidateDevice(payload, true)
	if len(errs) > 0 {
		badRequest(ctx, "Validation failed", errs)
		return
	}
	if len(fragment) == 0 {
		badRequest(ctx, "No fields provided for update", nil)
		return
	}

	device, err := w.Store.UpdateDevice(ctx.Request.Context(), ctx.Param("id"), fragment)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			notFound(ctx, "Device not found")
		case errors.Is(err, db.ErrDuplicateIP):
			conflict(ctx, "Device with the same ip_address already exists")
		default:
			slog.Error("update device failed", "error", err)
			internalError(ctx, "Database error")
		}
		return
	}

	var dvc model.Device
	dvc.TranslateToAPI(device)
	ctx.JSON(http.StatusOK, gin.H{"data": dvc})
}

// deleteDevice godoc
// @Summary      Delete a device
// @Description  Delete a device by ID. A second delete of the same id yields 404.
// @Tags         devices
// @Produce      json
// @Param        id   path      string  true  "Device ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  model.RestError
// @Failure      500  {object}  model.RestError
// @Router       /devices/{id} [delete]
func (w *Web) deleteDevice(ctx *gin.Context) {
	if err := w.Store.DeleteDevice(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			notFound(ctx, "Device not found")
			return
		}
		slog.Error("delete device failed", "error", err)
		internalError(ctx, "Database error")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// pingDevice godoc
// @Summary      Ping a device
// @Description  Probe the device's IP and update its status and last_checked. When the ping utility is unavailable the device is marked unknown and the response carries a note.
// @Tags         devices
// @Produce      json
// @Param        id   path      string  true  "Device ID"
// @Success      200  {object}  map[string]model.Device
// @Failure      404  {object}  model.RestError
// @Failure      500  {object}  model.RestError
// @Router       /devices/{id}/ping [post]
func (w *Web) pingDevice(ctx *gin.Context) {
	id := ctx.Param("id")

	device, err := w.Store.GetDeviceByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			notFound(ctx, "Device not found")
			return
		}
		slog.Error("ping lookup failed", "error", err)
		internalError(ctx, "Database error")
		return
	}

	result := w.Prober.Probe(ctx.Request.Context(), device.IPAddress)

	status := model.StatusUnknown
	note := ""
	switch result {
	case ping.Reachable:
		status = model.StatusOnline
	case ping.Unreachable:
		status = model.StatusOffline
	case ping.Unavailable:
		note = "ping-not-available"
	}

	patch := map[string]any{
		"status":       status,
		"last_checked": time.Now().UTC().Format(time.RFC3339),
	}
	updated, err := w.Store.UpdateDevice(ctx.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			notFound(ctx, "Device not found")
			return
		}
		slog.Error("ping update failed", "error", err)
		internalError(ctx, "Database error")
		return
	}

	var dvc model.Device
	dvc.TranslateToAPI(updated)

	resp := gin.H{"data": dvc}
	if note != "" {
		resp["note"] = note
	}
	ctx.JSON(http.StatusOK, resp)
}
