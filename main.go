package main

import "github.com/kento-1477/meal-log-app-new-sub002/cmd/meallog"

func main() {
	meallog.Execute()
}
