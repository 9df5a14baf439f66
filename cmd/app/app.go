package main

import (
	"github.com/vitrine-tech/storefront-backend/internal/app"
)

//	@title			Storefront API
//	@version		1.0
//	@description	Витрина: каталог, корзина и жизненный цикл заказов

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	app.Run()
}
