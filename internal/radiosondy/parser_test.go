package radiosondy

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sonde-recovery/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// trackingPage renders a minimal tracking page around the given APRS row cells.
func trackingPage(extra string, cells ...string) string {
	page := `<html><body><table id="Table7"><tbody><tr>`
	for _, c := range cells {
		page += "<td>" + c + "</td>"
	}
	return page + `</tr></tbody></table>` + extra + `</body></html>`
}

func validCells() []string {
	return []string{"1", "2", "2023-10-27 10:00:00", "50.00", "10.00", "90.0", "100.0", "10000.0", "-5.0"}
}

func TestParseTelemetry(t *testing.T) {
	t.Run("complete row", func(t *testing.T) {
		tel, err := ParseTelemetry(trackingPage("", validCells()...), testLogger())
		require.NoError(t, err)

		assert.Equal(t, domain.Coordinates{Lat: 50.0, Lon: 10.0}, tel.LastSeen)
		assert.Equal(t, time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC), tel.LastSeenAt)
		assert.Equal(t, 90.0, tel.Course)
		assert.Equal(t, 10000.0, tel.Altitude)
		assert.InDelta(t, 100.0*1000/3600, tel.SpeedMPS, 1e-9)
		assert.Equal(t, -5.0, tel.ClimbRate)
	})

	t.Run("climb rate with unit text", func(t *testing.T) {
		cells := validCells()
		cells[8] = "-7.3 m/s (descending)"
		tel, err := ParseTelemetry(trackingPage("", cells...), testLogger())
		require.NoError(t, err)
		assert.Equal(t, -7.3, tel.ClimbRate)
	})

	t.Run("climb rate without number defaults to zero", func(t *testing.T) {
		cells := validCells()
		cells[8] = "n/a"
		tel, err := ParseTelemetry(trackingPage("", cells...), testLogger())
		require.NoError(t, err)
		assert.Zero(t, tel.ClimbRate)
	})

	t.Run("whitespace around cells", func(t *testing.T) {
		cells := validCells()
		cells[3] = " 50.00\n"
		tel, err := ParseTelemetry(trackingPage("", cells...), testLogger())
		require.NoError(t, err)
		assert.Equal(t, 50.0, tel.LastSeen.Lat)
	})

	t.Run("too few cells", func(t *testing.T) {
		_, err := ParseTelemetry(trackingPage("", validCells()[:5]...), testLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cells")
	})

	t.Run("missing table", func(t *testing.T) {
		_, err := ParseTelemetry("<html><body><p>no data</p></body></html>", testLogger())
		require.ErrorIs(t, err, ErrNoDataTable)
	})

	t.Run("wrong table id", func(t *testing.T) {
		page := `<html><body><table id="Table1"><tbody><tr><td>x</td></tr></tbody></table></body></html>`
		_, err := ParseTelemetry(page, testLogger())
		require.ErrorIs(t, err, ErrNoDataTable)
	})

	t.Run("unparsable time", func(t *testing.T) {
		cells := validCells()
		cells[2] = "yesterday"
		_, err := ParseTelemetry(trackingPage("", cells...), testLogger())
		require.Error(t, err)
	})

	t.Run("non-numeric required cell rejects whole record", func(t *testing.T) {
		for i, field := range map[int]string{3: "latitude", 4: "longitude", 5: "course", 6: "speed", 7: "altitude"} {
			t.Run(field, func(t *testing.T) {
				cells := validCells()
				cells[i] = "N/A"
				_, err := ParseTelemetry(trackingPage("", cells...), testLogger())
				require.Error(t, err)
				assert.Contains(t, err.Error(), field)
			})
		}
	})

	t.Run("first body row wins", func(t *testing.T) {
		page := `<html><body><table id="Table7"><tbody>` +
			`<tr><td>1</td><td>2</td><td>2023-10-27 10:00:00</td><td>50.00</td><td>10.00</td><td>90.0</td><td>100.0</td><td>10000.0</td><td>-5.0</td></tr>` +
			`<tr><td>1</td><td>2</td><td>2023-10-27 09:00:00</td><td>49.00</td><td>9.00</td><td>10.0</td><td>50.0</td><td>12000.0</td><td>2.0</td></tr>` +
			`</tbody></table></body></html>`

		tel, err := ParseTelemetry(page, testLogger())
		require.NoError(t, err)
		assert.Equal(t, 50.0, tel.LastSeen.Lat)
		assert.Equal(t, 10000.0, tel.Altitude)
	})
}

func TestParseGroundHeight(t *testing.T) {
	tests := []struct {
		name string
		html string
		want float64
	}{
		{"present", trackingPage("<div>Ground Altitude: 100 m</div>", validCells()...), 100.0},
		{"large value", "Ground Altitude: 2143 m", 2143.0},
		{"absent", trackingPage("", validCells()...), 0.0},
		{"empty page", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGroundHeight(tt.html))
		})
	}
}

func TestParseClimbRate(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"-5.0", -5.0},
		{"+2.5", 2.5},
		{"3.25 m/s", 3.25},
		{"falling at -12.75m/s", -12.75},
		{"7", 7.0},
		{"", 0.0},
		{"unknown", 0.0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.raw), func(t *testing.T) {
			assert.Equal(t, tt.want, parseClimbRate(tt.raw))
		})
	}
}
