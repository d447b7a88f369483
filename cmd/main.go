/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/gohealpix
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package main

/*****************************************************************************************************************/

import (
	"fmt"
	"os"
)

/*****************************************************************************************************************/

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "map2fig:", err)
		os.Exit(1)
	}
}

/*****************************************************************************************************************/
