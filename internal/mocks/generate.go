package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name FixtureProvider --dir ../usecase --output usecase --outpkg usecasemock --filename fixture_provider_mock.go
