package model

// WeatherReport is the reshaped current-conditions response. Numeric fields
// carry their units inline ("21.5 °C", "3.6 m/s", "78%") to match the wire
// format the frontend renders directly.
type WeatherReport struct {
	City        string `json:"city"`
	Temperature string `json:"temperature"`
	Condition   string `json:"condition"`
	Wind        string `json:"wind"`
	Humidity    string `json:"humidity"`
	SavedID     int    `json:"saved_id,omitempty"`
	Time        string `json:"time"`
	Date        string `json:"date"`
}

// ForecastDay is one roughly-daily slot of the 5-day forecast.
type ForecastDay struct {
	Date        string `json:"date"`
	Temperature string `json:"temperature"`
	Condition   string `json:"condition"`
	Wind        string `json:"wind"`
	Humidity    string `json:"humidity"`
}

// ForecastReport groups the daily slots for one city.
type ForecastReport struct {
	City     string        `json:"city"`
	Forecast []ForecastDay `json:"forecast"`
}
