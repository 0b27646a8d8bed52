package main

import "kolibri/listcontent/cmd"

func main() {
	cmd.Execute()
}
