package platform

// keyPoller turns sampled key states into key-down edges.
type keyPoller struct {
	isDown func(vk uint16) bool
	vks    []uint16
	prev   map[uint16]bool
}

func newKeyPoller(isDown func(vk uint16) bool) *keyPoller {
	p := &keyPoller{isDown: isDown, vks: watchedKeys(), prev: make(map[uint16]bool)}
	p.step() // keys already held when polling starts do not fire
	return p
}

// step samples every watched key and returns the names of keys that went
// down since the previous sample.
func (p *keyPoller) step() []string {
	var pressed []string
	for _, vk := range p.vks {
		down := p.isDown(vk)
		if down && !p.prev[vk] {
			pressed = append(pressed, KeyName(vk))
		}
		p.prev[vk] = down
	}
	return pressed
}
