package availability_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/slotline/booking-app/db"
	"github.com/slotline/booking-app/models"
	"github.com/slotline/booking-app/testutil"
	"github.com/slotline/booking-app/utils"
)

func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func freezeNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := utils.Now
	utils.Now = func() time.Time { return at }
	t.Cleanup(func() { utils.Now = prev })
}

func TestCreateSlotRejectsOverlap(t *testing.T) {
	testutil.SetupDB(t)
	app := testutil.NewApp()
	user := testutil.CreateUser(t, "Ada", "ada@example.com")
	token := testutil.TokenFor(t, user.ID)

	resp := request(t, app, "POST", "/availability/slots", token, fiber.Map{
		"date": "2026-09-07", "start_time": "09:00", "end_time": "10:00", "duration": 60,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first slot: status %d, want 201", resp.StatusCode)
	}

	// Overlapping interval is rejected.
	resp = request(t, app, "POST", "/availability/slots", token, fiber.Map{
		"date": "2026-09-07", "start_time": "09:30", "end_time": "10:30", "duration": 60,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("overlapping slot: status %d, want 409", resp.StatusCode)
	}

	// Touching intervals do not overlap.
	resp = request(t, app, "POST", "/availability/slots", token, fiber.Map{
		"date": "2026-09-07", "start_time": "10:00", "end_time": "11:00", "duration": 60,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("adjacent slot: status %d, want 201", resp.StatusCode)
	}

	// Another user may hold the same interval.
	other := testutil.CreateUser(t, "Bea", "bea@example.com")
	resp = request(t, app, "POST", "/availability/slots", testutil.TokenFor(t, other.ID), fiber.Map{
		"date": "2026-09-07", "start_time": "09:00", "end_time": "10:00", "duration": 60,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("other user's slot: status %d, want 201", resp.StatusCode)
	}
}

func TestCreateSlotValidatesTimes(t *testing.T) {
	testutil.SetupDB(t)
	app := testutil.NewApp()
	user := testutil.CreateUser(t, "Ada", "ada@example.com")
	token := testutil.TokenFor(t, user.ID)

	cases := []fiber.Map{
		{"date": "07-09-2026", "start_time": "09:00", "end_time": "10:00"},
		{"date": "2026-09-07", "start_time": "10:00", "end_time": "09:00"},
		{"date": "2026-09-07", "start_time": "9am", "end_time": "10:00"},
	}
	for i, body := range cases {
		resp := request(t, app, "POST", "/availability/slots", token, body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("case %d: status %d, want 400", i, resp.StatusCode)
		}
	}
}

func TestSlotOwnershipScoping(t *testing.T) {
	gdb := testutil.SetupDB(t)
	app := testutil.NewApp()
	owner := testutil.CreateUser(t, "Ada", "ada@example.com")
	intruder := testutil.CreateUser(t, "Mallory", "mallory@example.com")

	slot := models.TimeSlot{
		OwnerID: owner.ID, Date: "2026-09-07",
		StartTime: "09:00", EndTime: "10:00", Duration: 60, IsAvailable: true,
	}
	if err := gdb.Create(&slot).Error; err != nil {
		t.Fatal(err)
	}

	// Deletes are idempotent, so a foreign delete reports success without
	// touching the row.
	resp := request(t, app, "DELETE", "/availability/slots/1", testutil.TokenFor(t, intruder.ID), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("foreign delete: status %d, want 204", resp.StatusCode)
	}
	var count int64
	gdb.Model(&models.TimeSlot{}).Where("id = ?", slot.ID).Count(&count)
	if count != 1 {
		t.Fatal("foreign delete removed the slot")
	}

	resp = request(t, app, "DELETE", "/availability/slots/1", testutil.TokenFor(t, owner.ID), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("owner delete: status %d, want 204", resp.StatusCode)
	}
	gdb.Model(&models.TimeSlot{}).Where("id = ?", slot.ID).Count(&count)
	if count != 0 {
		t.Fatal("owner delete left the slot in place")
	}

	// Deleting again is still a success.
	resp = request(t, app, "DELETE", "/availability/slots/1", testutil.TokenFor(t, owner.ID), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("repeat delete: status %d, want 204", resp.StatusCode)
	}
}

func TestGenerateSlotsIsIdempotent(t *testing.T) {
	testutil.SetupDB(t)
	app := testutil.NewApp()
	user := testutil.CreateUser(t, "Ada", "ada@example.com")
	token := testutil.TokenFor(t, user.ID)

	// Monday rule: 09:00-10:00, 30min slots, 10min buffer. Over a week
	// containing one Monday this yields exactly one slot (09:00-09:30).
	resp := request(t, app, "POST", "/availability/recurring", token, fiber.Map{
		"day_of_week": 1, "start_time": "09:00", "end_time": "10:00",
		"duration": 30, "buffer_time": 10, "is_active": true,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("rule: status %d, want 201", resp.StatusCode)
	}

	// 2026-09-07 is a Monday.
	generate := fiber.Map{"start_date": "2026-09-06", "end_date": "2026-09-12"}

	var result struct {
		CreatedSlots int `json:"created_slots"`
	}
	resp = request(t, app, "POST", "/availability/generate-slots", token, generate)
	decode(t, resp, &result)
	if result.CreatedSlots != 1 {
		t.Fatalf("first run created %d slots, want 1", result.CreatedSlots)
	}

	resp = request(t, app, "POST", "/availability/generate-slots", token, generate)
	decode(t, resp, &result)
	if result.CreatedSlots != 0 {
		t.Fatalf("second run created %d slots, want 0", result.CreatedSlots)
	}

	var slots []models.TimeSlot
	db.DB.Where("owner_id = ?", user.ID).Find(&slots)
	if len(slots) != 1 {
		t.Fatalf("found %d slots, want 1", len(slots))
	}
	if slots[0].Date != "2026-09-07" || slots[0].StartTime != "09:00" || slots[0].EndTime != "09:30" {
		t.Errorf("unexpected slot %+v", slots[0])
	}
}

func TestGenerateSlotsSkipsInactiveRules(t *testing.T) {
	gdb := testutil.SetupDB(t)
	app := testutil.NewApp()
	user := testutil.CreateUser(t, "Ada", "ada@example.com")
	token := testutil.TokenFor(t, user.ID)

	rule := models.RecurringRule{
		OwnerID: user.ID, DayOfWeek: models.Monday,
		StartTime: "09:00", EndTime: "10:00", Duration: 30, IsActive: false,
	}
	if err := gdb.Create(&rule).Error; err != nil {
		t.Fatal(err)
	}

	var result struct {
		CreatedSlots int `json:"created_slots"`
	}
	resp := request(t, app, "POST", "/availability/generate-slots", token,
		fiber.Map{"start_date": "2026-09-06", "end_date": "2026-09-12"})
	decode(t, resp, &result)
	if result.CreatedSlots != 0 {
		t.Errorf("created %d slots from inactive rule, want 0", result.CreatedSlots)
	}
}

func TestProfileSlugUniqueness(t *testing.T) {
	testutil.SetupDB(t)
	app := testutil.NewApp()
	ada := testutil.CreateUser(t, "Ada", "ada@example.com")
	bea := testutil.CreateUser(t, "Bea", "bea@example.com")
	adaToken := testutil.TokenFor(t, ada.ID)
	beaToken := testutil.TokenFor(t, bea.ID)

	resp := request(t, app, "POST", "/availability/profile", adaToken, fiber.Map{
		"business_name": "Ada Design", "slug": "ada-design",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d, want 201", resp.StatusCode)
	}

	// Second profile for the same owner.
	resp = request(t, app, "POST", "/availability/profile", adaToken, fiber.Map{
		"business_name": "Ada Two", "slug": "ada-two",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate owner: status %d, want 409", resp.StatusCode)
	}

	// Someone else taking the slug.
	resp = request(t, app, "POST", "/availability/profile", beaToken, fiber.Map{
		"business_name": "Bea Studio", "slug": "ada-design",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("taken slug: status %d, want 409", resp.StatusCode)
	}

	resp = request(t, app, "POST", "/availability/profile", beaToken, fiber.Map{
		"business_name": "Bea Studio", "slug": "bea-studio",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("bea create: status %d, want 201", resp.StatusCode)
	}

	// Updating without changing the slug must not collide with itself.
	resp = request(t, app, "PUT", "/availability/profile", beaToken, fiber.Map{
		"business_name": "Bea Studio & Co", "slug": "bea-studio",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("self update: status %d, want 200", resp.StatusCode)
	}

	// Changing to a taken slug fails.
	resp = request(t, app, "PUT", "/availability/profile", beaToken, fiber.Map{
		"business_name": "Bea Studio", "slug": "ada-design",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("update to taken slug: status %d, want 409", resp.StatusCode)
	}
}

func TestPublicAvailability(t *testing.T) {
	gdb := testutil.SetupDB(t)
	app := testutil.NewApp()
	freezeNow(t, time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local))

	ada := testutil.CreateUser(t, "Ada", "ada@example.com")
	profile := models.FreelancerProfile{
		OwnerID: ada.ID, BusinessName: "Ada Design", Slug: "ada-design",
		IsPublic: true, BookingAdvanceDays: 30,
	}
	if err := gdb.Create(&profile).Error; err != nil {
		t.Fatal(err)
	}

	slots := []models.TimeSlot{
		{OwnerID: ada.ID, Date: "2026-09-10", StartTime: "09:00", EndTime: "10:00", IsAvailable: true},
		{OwnerID: ada.ID, Date: "2026-09-08", StartTime: "14:00", EndTime: "15:00", IsAvailable: true},
		{OwnerID: ada.ID, Date: "2026-09-09", StartTime: "09:00", EndTime: "10:00", IsAvailable: false},
		{OwnerID: ada.ID, Date: "2026-08-20", StartTime: "09:00", EndTime: "10:00", IsAvailable: true},
	}
	for i := range slots {
		if err := gdb.Create(&slots[i]).Error; err != nil {
			t.Fatal(err)
		}
	}

	var page struct {
		TimeSlots     []models.TimeSlot `json:"time_slots"`
		NextAvailable string            `json:"next_available"`
	}
	resp := request(t, app, "GET", "/availability/public/ada-design", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", resp.StatusCode)
	}
	decode(t, resp, &page)

	// Past and unavailable slots are excluded; order is date, start time.
	if len(page.TimeSlots) != 2 {
		t.Fatalf("got %d slots, want 2: %+v", len(page.TimeSlots), page.TimeSlots)
	}
	if page.TimeSlots[0].Date != "2026-09-08" || page.TimeSlots[1].Date != "2026-09-10" {
		t.Errorf("slots out of order: %+v", page.TimeSlots)
	}
	if page.NextAvailable != "2026-09-08" {
		t.Errorf("next_available = %q, want 2026-09-08", page.NextAvailable)
	}

	// Unknown slug and non-public profiles are both 404.
	resp = request(t, app, "GET", "/availability/public/nobody", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown slug: status %d, want 404", resp.StatusCode)
	}

	gdb.Model(&models.FreelancerProfile{}).Where("id = ?", profile.ID).
		Update("is_public", false)
	resp = request(t, app, "GET", "/availability/public/ada-design", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("private profile: status %d, want 404", resp.StatusCode)
	}
}

func TestAvailabilityStats(t *testing.T) {
	gdb := testutil.SetupDB(t)
	app := testutil.NewApp()
	// Tuesday 2026-09-01; the current week is Aug 30 - Sep 5.
	freezeNow(t, time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local))

	ada := testutil.CreateUser(t, "Ada", "ada@example.com")
	token := testutil.TokenFor(t, ada.ID)

	slots := []models.TimeSlot{
		{OwnerID: ada.ID, Date: "2026-09-02", StartTime: "09:00", EndTime: "10:00", IsAvailable: false},
		{OwnerID: ada.ID, Date: "2026-09-03", StartTime: "09:00", EndTime: "10:00", IsAvailable: true},
		{OwnerID: ada.ID, Date: "2026-09-20", StartTime: "09:00", EndTime: "10:00", IsAvailable: true}, // outside week
	}
	for i := range slots {
		if err := gdb.Create(&slots[i]).Error; err != nil {
			t.Fatal(err)
		}
	}
	appointment := models.Appointment{
		TimeSlotID: slots[0].ID, FreelancerID: ada.ID,
		CustomerName: "Bob", CustomerEmail: "bob@example.com",
		Date: "2026-09-02", StartTime: "09:00", EndTime: "10:00",
		Status: models.StatusConfirmed, BookingReference: "STATS001",
	}
	if err := gdb.Create(&appointment).Error; err != nil {
		t.Fatal(err)
	}

	var stats struct {
		Week struct {
			TotalSlots     int64 `json:"total_slots"`
			BookedSlots    int64 `json:"booked_slots"`
			AvailableSlots int64 `json:"available_slots"`
		} `json:"week"`
		Month struct {
			TotalAppointments int64 `json:"total_appointments"`
		} `json:"month"`
		Upcoming []models.Appointment `json:"upcoming_appointments"`
	}
	resp := request(t, app, "GET", "/availability/stats", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", resp.StatusCode)
	}
	decode(t, resp, &stats)

	if stats.Week.TotalSlots != 2 || stats.Week.BookedSlots != 1 || stats.Week.AvailableSlots != 1 {
		t.Errorf("week stats = %+v", stats.Week)
	}
	if stats.Month.TotalAppointments != 1 {
		t.Errorf("month appointments = %d, want 1", stats.Month.TotalAppointments)
	}
	if len(stats.Upcoming) != 1 {
		t.Errorf("upcoming = %d, want 1", len(stats.Upcoming))
	}
}
