package weather

type condition struct {
	Text  string
	Emoji string
}

// WMO weather codes as reported by Open-Meteo
var weatherCodes = map[int]condition{
	0:  {"Clear sky", "☀️"},
	1:  {"Mainly clear", "🌤️"},
	2:  {"Partly cloudy", "⛅"},
	3:  {"Overcast", "☁️"},
	45: {"Fog", "🌫️"},
	48: {"Depositing rime fog", "🌫️"},
	51: {"Light drizzle", "🌦️"},
	53: {"Drizzle", "🌦️"},
	55: {"Dense drizzle", "🌦️"},
	61: {"Slight rain", "🌧️"},
	63: {"Rain", "🌧️"},
	65: {"Heavy rain", "🌧️"},
	66: {"Light freezing rain", "🌧️"},
	67: {"Freezing rain", "🌧️"},
	71: {"Slight snow", "🌨️"},
	73: {"Snow", "🌨️"},
	75: {"Heavy snow", "🌨️"},
	77: {"Snow grains", "🌨️"},
	80: {"Rain showers", "🌧️"},
	81: {"Heavy rain showers", "🌧️"},
	82: {"Violent rain showers", "🌧️"},
	85: {"Snow showers", "🌨️"},
	86: {"Heavy snow showers", "🌨️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"Thunderstorm w/ hail", "⛈️"},
	99: {"Thunderstorm w/ heavy hail", "⛈️"},
}

func describe(code *int) condition {
	if code == nil {
		return condition{}
	}
	return weatherCodes[*code]
}
