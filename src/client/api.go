package client

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Arawerawer/RouteLink/src/core/models"
)

// TripAPI is the slice of the REST surface the hooks consume.
type TripAPI interface {
	ListLocations() ([]models.Location, error)
	CreateLocation(name, address string) (*models.Location, error)
	UpdateLocation(id uuid.UUID, name, address string) (*models.Location, error)
	DeleteLocation(id uuid.UUID) (*models.Location, error)
	ListSchedules() ([]models.ScheduleWithLocation, error)
	CreateSchedule(locationID uuid.UUID, note *string) (*models.Schedule, error)
	UpdateCompleted(id uuid.UUID, completed bool) (*models.Schedule, error)
	UpdateNote(id uuid.UUID, note *string) (*models.Schedule, error)
	DeleteSchedule(id uuid.UUID) (*models.Schedule, error)
}

// API talks to the REST endpoints with a bearer token.
type API struct {
	BaseURL string
	Token   string
}

var _ TripAPI = (*API)(nil)

type successEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (a *API) do(agent *fiber.Agent, out interface{}) error {
	agent.Set(fiber.HeaderAuthorization, "Bearer "+a.Token)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return errs[0]
	}
	if code < 200 || code >= 300 {
		var e errorEnvelope
		if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
			return fmt.Errorf("request failed (%d): %s", e.StatusCode, e.Message)
		}
		return fmt.Errorf("request failed with status %d", code)
	}
	if out == nil {
		return nil
	}

	var env successEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}
	return json.Unmarshal(env.Data, out)
}

func (a *API) ListLocations() ([]models.Location, error) {
	out := make([]models.Location, 0)
	err := a.do(fiber.Get(a.BaseURL+"/api/locations"), &out)
	return out, err
}

func (a *API) CreateLocation(name, address string) (*models.Location, error) {
	agent := fiber.Post(a.BaseURL + "/api/locations")
	agent.JSON(fiber.Map{"name": name, "address": address})

	var out models.Location
	if err := a.do(agent, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) UpdateLocation(id uuid.UUID, name, address string) (*models.Location, error) {
	agent := fiber.Put(a.BaseURL + "/api/locations/" + id.String())
	agent.JSON(fiber.Map{"name": name, "address": address})

	var out models.Location
	if err := a.do(agent, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) DeleteLocation(id uuid.UUID) (*models.Location, error) {
	var out models.Location
	if err := a.do(fiber.Delete(a.BaseURL+"/api/locations/"+id.String()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) ListSchedules() ([]models.ScheduleWithLocation, error) {
	out := make([]models.ScheduleWithLocation, 0)
	err := a.do(fiber.Get(a.BaseURL+"/api/schedules"), &out)
	return out, err
}

func (a *API) CreateSchedule(locationID uuid.UUID, note *string) (*models.Schedule, error) {
	agent := fiber.Post(a.BaseURL + "/api/schedules")
	agent.JSON(fiber.Map{"location_id": locationID.String(), "note": note})

	var out models.Schedule
	if err := a.do(agent, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) UpdateCompleted(id uuid.UUID, completed bool) (*models.Schedule, error) {
	agent := fiber.Put(a.BaseURL + "/api/schedules/" + id.String())
	agent.JSON(fiber.Map{"completed": completed})

	var out models.Schedule
	if err := a.do(agent, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) UpdateNote(id uuid.UUID, note *string) (*models.Schedule, error) {
	agent := fiber.Put(a.BaseURL + "/api/schedules/" + id.String())
	agent.JSON(fiber.Map{"note": note})

	var out models.Schedule
	if err := a.do(agent, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) DeleteSchedule(id uuid.UUID) (*models.Schedule, error) {
	var out models.Schedule
	if err := a.do(fiber.Delete(a.BaseURL+"/api/schedules/"+id.String()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
