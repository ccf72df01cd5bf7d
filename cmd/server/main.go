// @title         SkillSync API
// @version       1.0
// @description   Сервис сопоставления резюме с профилем целевой роли: профиль строится по живым вакансиям с помощью LLM, затем считается разрыв навыков и план обучения.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен авторизации. Поддерживаются форматы: "Bearer <JWT>" или "<JWT>".
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
