package seeder

import "github.com/brianvoe/gofakeit/v6"

type Options struct {
	Jobs  int
	Users int
	// Seed makes the generated data reproducible; 0 picks a random seed.
	Seed int64
}

func Defaults(opts Options) []Seeder {
	faker := gofakeit.New(opts.Seed)
	return []Seeder{
		JobsSeeder{Count: opts.Jobs, Faker: faker},
		UsersSeeder{Count: opts.Users, Faker: faker},
	}
}
