package integration_test

const (
	TestMovieTitle    = "Test Movie Integration"
	TestMovieYear     = 2024
	TestMovieDirector = "Test Director"
	TestMovieDuration = 120
	TestMovieRate     = 8.5
	TestMoviePoster   = "https://example.com/test-poster.jpg"

	MissingPostgresId = "0190a4a8-0000-7000-8000-000000000000"
	MissingMongoId    = "65f0c0ffee0000000000beef"
)

var TestMovieGenre = []string{"Action", "Drama"}
