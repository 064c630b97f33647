package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go-weather-api/logger"
	"go-weather-api/model"
	"go-weather-api/repository"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// DefaultCity is used when a current-weather request names no city and no
// coordinates.
const DefaultCity = "Nairobi"

// forecastStride picks every 8th 3-hour slot from the upstream forecast
// list, i.e. roughly one entry per day.
const forecastStride = 8

var (
	ErrCityNotFound   = errors.New("city not found")
	ErrUpstreamFailed = errors.New("weather provider request failed")
)

// WeatherService proxies requests to the OpenWeather API and reshapes the
// responses. The API key and base URL are injected at construction so tests
// can point it at a fake upstream.
type WeatherService struct {
	client     *http.Client
	apiKey     string
	baseURL    string
	searchRepo repository.ISearchRepository
}

func NewWeatherService(apiKey, baseURL string, searchRepo repository.ISearchRepository) *WeatherService {
	return &WeatherService{
		client:     &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		searchRepo: searchRepo,
	}
}

// owCondition is one entry of the upstream "weather" array.
type owCondition struct {
	Description string `json:"description"`
}

// owCurrentResponse covers both the success and the error shape of the
// upstream current-weather endpoint. Cod is an int on success and a string
// on errors, hence json.Number.
type owCurrentResponse struct {
	Cod     json.Number `json:"cod"`
	Message string      `json:"message"`
	Name    string      `json:"name"`
	Main    struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []owCondition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type owForecastResponse struct {
	Cod  json.Number `json:"cod"`
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []owCondition `json:"weather"`
		Wind    struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
	City struct {
		Name string `json:"name"`
	} `json:"city"`
}

// Current fetches current conditions for a city (DefaultCity when empty),
// appends the lookup to the search history and returns the reshaped report.
func (s *WeatherService) Current(ctx context.Context, city string) (*model.WeatherReport, error) {
	if city == "" {
		city = DefaultCity
	}
	cityName := capitalize(city)

	log := logger.Log.WithField("city", cityName)
	log.Info("Fetching current weather")

	params := url.Values{}
	params.Set("q", city)
	data, err := s.fetchCurrent(ctx, params)
	if err != nil {
		return nil, err
	}

	report := s.reshapeCurrent(cityName, data)

	search, err := s.searchRepo.RecordSearch(cityName)
	if err != nil {
		// The lookup itself succeeded; a history write failure is logged
		// and the report still returned.
		log.WithError(err).Error("Failed to record weather search")
	} else {
		report.SavedID = search.ID
	}

	return report, nil
}

// CurrentByCoords fetches current conditions for a coordinate pair. The
// city name comes from the upstream response; the lookup is logged under
// that resolved name.
func (s *WeatherService) CurrentByCoords(ctx context.Context, lat, lon float64) (*model.WeatherReport, error) {
	log := logger.Log.WithFields(logrus.Fields{"lat": lat, "lon": lon})
	log.Info("Fetching current weather by coordinates")

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	data, err := s.fetchCurrent(ctx, params)
	if err != nil {
		return nil, err
	}

	cityName := data.Name
	if cityName == "" {
		cityName = "Unknown"
	}
	return s.reshapeCurrent(cityName, data), nil
}

// Forecast fetches the 5-day forecast for a city and condenses it to one
// entry per day.
func (s *WeatherService) Forecast(ctx context.Context, city string) (*model.ForecastReport, error) {
	log := logger.Log.WithField("city", city)
	log.Info("Fetching forecast")

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", s.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/forecast?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}

	res, err := s.client.Do(req)
	if err != nil {
		log.WithError(err).Error("Forecast request failed")
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}
	defer res.Body.Close()

	var data owForecastResponse
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		log.WithError(err).Error("Failed to decode forecast response")
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}

	if res.StatusCode != http.StatusOK {
		log.WithField("status", res.StatusCode).Error("Forecast API error")
		if res.StatusCode == http.StatusNotFound {
			return nil, ErrCityNotFound
		}
		return nil, fmt.Errorf("%w: upstream status %d", ErrUpstreamFailed, res.StatusCode)
	}

	report := &model.ForecastReport{
		City:     data.City.Name,
		Forecast: []model.ForecastDay{},
	}
	if report.City == "" {
		report.City = city
	}
	for i := 0; i < len(data.List); i += forecastStride {
		item := data.List[i]
		day := model.ForecastDay{
			Date:        strings.SplitN(item.DtTxt, " ", 2)[0],
			Temperature: fmt.Sprintf("%g °C", item.Main.Temp),
			Humidity:    fmt.Sprintf("%d%%", item.Main.Humidity),
			Wind:        fmt.Sprintf("%g m/s", item.Wind.Speed),
		}
		if len(item.Weather) > 0 {
			day.Condition = capitalize(item.Weather[0].Description)
		}
		report.Forecast = append(report.Forecast, day)
	}

	log.Info("Forecast returned successfully")
	return report, nil
}

// fetchCurrent calls the upstream current-weather endpoint with the given
// query parameters plus the API key and metric units.
func (s *WeatherService) fetchCurrent(ctx context.Context, params url.Values) (*owCurrentResponse, error) {
	params.Set("appid", s.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/weather?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}

	res, err := s.client.Do(req)
	if err != nil {
		logger.Log.WithError(err).Error("Weather request failed")
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}
	defer res.Body.Close()

	var data owCurrentResponse
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		logger.Log.WithError(err).Error("Failed to decode weather response")
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}

	// The upstream reports errors in-band via "cod".
	if data.Cod.String() != "200" {
		logger.Log.WithFields(logrus.Fields{
			"cod":     data.Cod.String(),
			"message": data.Message,
		}).Error("Weather API error")
		return nil, ErrCityNotFound
	}

	return &data, nil
}

func (s *WeatherService) reshapeCurrent(cityName string, data *owCurrentResponse) *model.WeatherReport {
	now := time.Now()
	report := &model.WeatherReport{
		City:        cityName,
		Temperature: fmt.Sprintf("%g °C", data.Main.Temp),
		Humidity:    fmt.Sprintf("%d%%", data.Main.Humidity),
		Wind:        fmt.Sprintf("%g m/s", data.Wind.Speed),
		Time:        now.Format("15:04:05"),
		Date:        now.Format("2006-01-02"),
	}
	if len(data.Weather) > 0 {
		report.Condition = capitalize(data.Weather[0].Description)
	}
	return report
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
