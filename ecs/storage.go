package ecs

// entityStore tracks entity generations and free ids.
type entityStore struct {
	nextID int
	gen    []int
	live   []bool
	free   []int
	alive  int
}

func (s *entityStore) create() Entity {
	if s == nil {
		return Entity{}
	}
	var id int
	if len(s.free) > 0 {
		id = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	} else {
		s.nextID++
		id = s.nextID
		if id > len(s.gen) {
			s.gen = append(s.gen, 0)
			s.live = append(s.live, false)
		}
	}
	s.live[id-1] = true
	s.alive++
	return Entity{ID: id, Gen: s.gen[id-1]}
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	s.gen[e.ID-1]++
	s.live[e.ID-1] = false
	s.free = append(s.free, e.ID)
	s.alive--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	if s == nil || e.ID <= 0 || e.ID > len(s.gen) {
		return false
	}
	return s.live[e.ID-1] && s.gen[e.ID-1] == e.Gen
}

// lookup returns the live entity currently holding id.
func (s *entityStore) lookup(id int) (Entity, bool) {
	if s == nil || id <= 0 || id > len(s.gen) || !s.live[id-1] {
		return Entity{}, false
	}
	return Entity{ID: id, Gen: s.gen[id-1]}, true
}
