package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Database    Database `envPrefix:"DB_"`
	Auth        Auth     `envPrefix:"AUTH_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"` // sqlite | mysql
	URL    string `env:"URL" envDefault:"pedidos.db"`
}

type Auth struct {
	SecretKey string `env:"SECRET_KEY" envDefault:"change-me-in-production"`
	// access token lifetime in minutes; refresh tokens are fixed at 7 days
	AccessTokenMinutes int `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"120"`
	// latest access token is written here on login for local debugging,
	// empty disables it
	TokenFile string `env:"TOKEN_FILE" envDefault:"access_token.txt"`
}
