package api

import (
	"context"
	"net/http"

	"github.com/babysteps/babysteps/internal/constants"
	"github.com/babysteps/babysteps/internal/models"
)

// HabitRequest is the mutation payload for habit create/edit calls.
type HabitRequest struct {
	Name     string           `json:"name"`
	Goal     int              `json:"goal"`
	Period   constants.Period `json:"period"`
	Reminder string           `json:"reminder,omitempty"`
}

// ListHabits fetches the authenticated user's full habit collection.
func (c *Client) ListHabits(ctx context.Context) ([]models.Habit, error) {
	var habits []models.Habit
	if err := c.do(ctx, http.MethodGet, "/habits", nil, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

// CreateHabit adds a new habit and returns the server's record of it.
func (c *Client) CreateHabit(ctx context.Context, req HabitRequest) (models.Habit, error) {
	var habit models.Habit
	err := c.do(ctx, http.MethodPost, "/habits", req, &habit)
	return habit, err
}

// UpdateHabit replaces a habit's fields.
func (c *Client) UpdateHabit(ctx context.Context, id string, req HabitRequest) (models.Habit, error) {
	var habit models.Habit
	err := c.do(ctx, http.MethodPut, "/habits/"+id, req, &habit)
	return habit, err
}

// LogProgress increments a habit's progress counter on the server.
func (c *Client) LogProgress(ctx context.Context, id string) (models.Habit, error) {
	var habit models.Habit
	err := c.do(ctx, http.MethodPut, "/habits/"+id+"/log", nil, &habit)
	return habit, err
}

// DeleteHabit removes a single habit.
func (c *Client) DeleteHabit(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/habits/"+id, nil, nil)
}

// ResetHabits deletes every habit for the authenticated user.
func (c *Client) ResetHabits(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/habits/reset", nil, nil)
}
