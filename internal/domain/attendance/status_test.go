package attendance

import (
	"testing"

	"github.com/cossmil/asistencia-backend/internal/pkg/schedule"
	"github.com/cossmil/asistencia-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestCombineStatus(t *testing.T) {
	onTime := schedule.Evaluation{InDay: true, InWindow: true, Status: schedule.StatusOnTime}
	late := schedule.Evaluation{InDay: true, InWindow: true, Status: schedule.StatusLate}
	outside := schedule.Evaluation{InDay: true, InWindow: false, Status: schedule.StatusOutsideWindow}
	wrongDay := schedule.Evaluation{InDay: false, InWindow: false, Status: schedule.StatusOutsideWindow}

	tests := []struct {
		name   string
		inZone *bool
		ev     schedule.Evaluation
		want   Status
	}{
		{"inside and on time", boolPtr(true), onTime, StatusOnTime},
		{"inside and late", boolPtr(true), late, StatusLate},
		{"inside, outside window", boolPtr(true), outside, StatusOutsideWindow},
		{"outside zone, on time", boolPtr(false), onTime, StatusOutsideZone},
		{"outside zone, late", boolPtr(false), late, StatusOutsideZone},
		{"outside both", boolPtr(false), outside, StatusOutsideZoneAndWindow},
		{"outside zone on a day off", boolPtr(false), wrongDay, StatusOutsideZoneAndWindow},
		{"no position, on time", nil, onTime, StatusOnTime},
		{"no position, outside window", nil, outside, StatusOutsideWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CombineStatus(tt.inZone, tt.ev))
		})
	}
}

func TestMarkAttendanceRequest_Validate(t *testing.T) {
	lat, lng := -17.78, -63.18
	badLat := -95.0

	t.Run("defaults", func(t *testing.T) {
		blank := "  "
		req := MarkAttendanceRequest{AssignmentID: "a1", WorkerID: "w1", Comment: &blank}
		require.NoError(t, req.Validate())
		assert.Equal(t, DefaultReportedStatus, req.ReportedStatus)
		assert.Nil(t, req.Comment)
		assert.Nil(t, req.Position())
	})

	t.Run("position", func(t *testing.T) {
		req := MarkAttendanceRequest{AssignmentID: "a1", WorkerID: "w1", Lat: &lat, Lng: &lng, ReportedStatus: "entrada"}
		require.NoError(t, req.Validate())
		assert.Equal(t, "entrada", req.ReportedStatus)
		require.NotNil(t, req.Position())
		assert.Equal(t, lat, req.Position().Lat)
	})

	tests := map[string]struct {
		req   MarkAttendanceRequest
		field string
	}{
		"missing assignment": {MarkAttendanceRequest{WorkerID: "w1"}, "id_asignacion"},
		"missing worker":     {MarkAttendanceRequest{AssignmentID: "a1"}, "token"},
		"lat without lng":    {MarkAttendanceRequest{AssignmentID: "a1", WorkerID: "w1", Lat: &lat}, "lat"},
		"lat out of range":   {MarkAttendanceRequest{AssignmentID: "a1", WorkerID: "w1", Lat: &badLat, Lng: &lng}, "lat"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.req.Validate()
			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), tt.field)
		})
	}
}

func TestListFilter_Validate(t *testing.T) {
	f := ListFilter{}
	require.NoError(t, f.Validate())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 50, f.Limit)
	assert.Equal(t, 0, f.Offset())

	f = ListFilter{Page: 3, Limit: 20}
	require.NoError(t, f.Validate())
	assert.Equal(t, 40, f.Offset())

	bad := "present"
	f = ListFilter{Page: -1, Limit: 500, Status: &bad}
	var errs validator.ValidationErrors
	require.ErrorAs(t, f.Validate(), &errs)
	m := errs.ToMap()
	assert.Contains(t, m, "page")
	assert.Contains(t, m, "limit")
	assert.Contains(t, m, "status")
}
