package main

import "github.com/varbhar/llm-council/internal/commands"

func main() {
	commands.Execute()
}
