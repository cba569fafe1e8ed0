package main

const preamble = `// Code generated by svcgen. DO NOT EDIT.

package %s

import (
	"poise/src/hardware/armcm"
	"poise/src/reverie"
)

// userServices lists every service reachable through a positive SVC
// number, in table order.  Service number n is userServices[n-1].
var userServices = []struct {
	Name string
	Fn   reverie.Callee
}{
`

const entryLit = "\t{%[1]q, svc%[2]s},\n"

const trailer = `}

// installUserSVCTable registers every service with the machine and
// lays the table out at tableAddr: the count in word zero, one handle
// per service after it.
func installUserSVCTable(m *reverie.Machine, tableAddr, handleBase uint32) {
	armcm.Store32(tableAddr, uint32(len(userServices)))
	for i, s := range userServices {
		h := handleBase + uint32(4*i)
		m.RegisterFunc(h, s.Fn)
		armcm.Store32(tableAddr+uint32(4*(i+1)), h)
	}
}
`
