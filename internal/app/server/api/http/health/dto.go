package health

type Input struct{}

type Output struct {
	Body Response
}

// Response: Status описывает сам сервис, Storage - результат Pinger.
type Response struct {
	Status  string `json:"status" example:"OK" doc:"Состояние сервиса"`
	Storage string `json:"storage" example:"OK" enum:"OK,UNAVAILABLE" doc:"Доступность хранилища"`
}
