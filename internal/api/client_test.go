package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"calorics/internal/model"
	"calorics/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *session.Session {
	sess := session.New()
	sess.SetCredential("test-token")
	return sess
}

func newTestClient(t *testing.T, handler http.Handler) (Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(server.URL, testSession(), 5*time.Second, zerolog.Nop())
	return client, server
}

func TestClient_Foods(t *testing.T) {
	foods := []model.Food{
		{ID: 1, Name: "Apple", CaloriesPer100g: 52, Servings: []model.Serving{
			{ID: 1, Description: "1 medium", Grams: 182},
		}},
	}

	var gotAuth, gotCorrelation string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/foods", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotCorrelation = r.Header.Get("X-Correlation-ID")
		json.NewEncoder(w).Encode(foods)
	}))

	got, err := client.Foods(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Apple", got[0].Name)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.NotEmpty(t, gotCorrelation)
}

func TestClient_UserStats(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/stats", r.URL.Path)
		assert.Equal(t, "2024-03-10", r.URL.Query().Get("date"))
		json.NewEncoder(w).Encode(model.UserStats{
			DailyCalories:  640,
			NeededCalories: 2200,
			CurrentWeight:  80,
			Goal:           model.GoalLose,
			FoodEntries: []model.FoodEntry{
				{ID: 5, FoodID: 1, Calories: 95, Date: "2024-03-10"},
			},
		})
	}))

	stats, err := client.UserStats(context.Background(), "2024-03-10")

	require.NoError(t, err)
	assert.Equal(t, 2200.0, stats.NeededCalories)
	assert.Equal(t, model.GoalLose, stats.Goal)
	require.Len(t, stats.FoodEntries, 1)
	assert.Equal(t, uint64(5), stats.FoodEntries[0].ID)
}

func TestClient_UserStats_MalformedDate(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("malformed dates must not reach the backend")
	}))

	_, err := client.UserStats(context.Background(), "10/03/2024")

	assert.ErrorIs(t, err, model.ErrInvalidDate)
}

func TestClient_CreateEntry(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/food-entries", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req model.FoodEntryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, uint64(1), req.FoodID)
		assert.Equal(t, "1 medium", req.ServingDesc)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.FoodEntry{
			ID: 10, FoodID: req.FoodID, ServingDesc: req.ServingDesc,
			Quantity: req.Quantity, Calories: 95, Date: req.Date,
		})
	}))

	entry, err := client.CreateEntry(context.Background(), model.FoodEntryRequest{
		FoodID: 1, ServingDesc: "1 medium", Quantity: 1, Date: "2024-03-10",
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(10), entry.ID)
	assert.Equal(t, 95.0, entry.Calories)
}

func TestClient_DeleteEntry_NoBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/food-entries/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.NoError(t, client.DeleteEntry(context.Background(), 7))
}

func TestClient_BackendErrorMessageSurfaced(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(model.ErrorResponse{Error: "quantity must be positive"})
	}))

	err := client.DeleteEntry(context.Background(), 7)

	require.Error(t, err)
	assert.Equal(t, model.ErrCodeRequestFailed, model.ErrorCode(err))
	assert.Equal(t, "quantity must be positive", err.Error())
}

func TestClient_NotFoundMapped(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"food set not found"}`, http.StatusNotFound)
	}))

	err := client.ApplyFoodSet(context.Background(), 42, "2024-03-10")

	require.Error(t, err)
	assert.True(t, model.IsNotFound(err))
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client := NewClient(server.URL, testSession(), time.Second, zerolog.Nop())
	server.Close()

	_, err := client.Foods(context.Background())

	require.Error(t, err)
	assert.Equal(t, model.ErrCodeNetwork, model.ErrorCode(err))
}

func TestClient_NoCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("requests without a credential must not be sent")
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, session.New(), time.Second, zerolog.Nop())
	_, err := client.Foods(context.Background())

	assert.ErrorIs(t, err, model.ErrNoCredential)
}

func TestClient_ApplyFoodSet(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/food-sets/3/apply", r.URL.Path)
		assert.Equal(t, "2024-03-10", r.URL.Query().Get("date"))
		w.WriteHeader(http.StatusOK)
	}))

	assert.NoError(t, client.ApplyFoodSet(context.Background(), 3, "2024-03-10"))
}

func TestClient_ApplyFoodSet_MalformedDate(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("malformed dates must not reach the backend")
	}))

	err := client.ApplyFoodSet(context.Background(), 3, "not-a-date")

	assert.ErrorIs(t, err, model.ErrInvalidDate)
}

func TestClient_CreateFoodSet(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req model.FoodSetRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Breakfast", req.Name)
		require.Len(t, req.Entries, 2)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.FoodSet{ID: 9, Name: req.Name, Entries: req.Entries})
	}))

	set, err := client.CreateFoodSet(context.Background(), model.FoodSetRequest{
		Name: "Breakfast",
		Entries: []model.FoodSetEntry{
			{FoodID: 1, ServingDesc: "1 medium", Quantity: 1},
			{FoodID: 2, ServingDesc: "100g", Quantity: 2},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(9), set.ID)
}
