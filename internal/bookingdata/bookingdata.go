// Package bookingdata provides the booking data driven through the hotel suites.
package bookingdata

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed hotel.yaml
var defaultData []byte

// SearchPage holds the search form inputs
type SearchPage struct {
	Location        string `yaml:"location"`
	Hotel           string `yaml:"hotel"`
	RoomType        string `yaml:"roomType"`
	NumberOfRooms   string `yaml:"numberOfRooms"`
	CheckInDate     string `yaml:"checkInDate"`
	CheckOutDate    string `yaml:"checkOutDate"`
	AdultsPerRoom   string `yaml:"adultsPerRoom"`
	ChildrenPerRoom string `yaml:"childrenPerRoom"`
}

// SelectHotel holds the expectations on the select hotel page
type SelectHotel struct {
	HeadingText string `yaml:"headingText"`
}

// Data is a complete data set for one run
type Data struct {
	SearchPage  SearchPage  `yaml:"searchPage"`
	SelectHotel SelectHotel `yaml:"selectHotel"`
}

// Default returns the embedded data set
func Default() (*Data, error) {
	return Parse(defaultData)
}

// Load reads a data set from path
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path comes from the test environment
	if err != nil {
		return nil, fmt.Errorf("failed to read test data: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML data set
func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse test data: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate reports every missing search field at once
func (d *Data) Validate() error {
	s := d.SearchPage
	fields := []struct {
		name, value string
	}{
		{"location", s.Location},
		{"hotel", s.Hotel},
		{"roomType", s.RoomType},
		{"numberOfRooms", s.NumberOfRooms},
		{"checkInDate", s.CheckInDate},
		{"checkOutDate", s.CheckOutDate},
		{"adultsPerRoom", s.AdultsPerRoom},
		{"childrenPerRoom", s.ChildrenPerRoom},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("test data is missing searchPage fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Resolve loads the data set named by the TEST_DATA environment variable,
// falling back to the embedded defaults
func Resolve() (*Data, error) {
	if path := os.Getenv("TEST_DATA"); path != "" {
		return Load(path)
	}
	return Default()
}
