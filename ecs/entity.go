package ecs

import "strconv"

// Entity is a generational handle. ID is stable for the lifetime of the
// entity and Gen changes when the id is recycled.
type Entity struct {
	ID  int
	Gen int
}

// None is the zero Entity. It never refers to a live entity.
var None = Entity{}

func (e Entity) Valid() bool {
	return e.ID > 0
}

func (e Entity) String() string {
	return strconv.Itoa(e.ID) + "." + strconv.Itoa(e.Gen)
}
