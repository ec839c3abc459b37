// Package progress holds the per-level counters: paradigm shifts, challenged
// cogs, candies, stamina and the balloon float aid.
package progress

// Kind names a counter in change notifications.
type Kind string

const (
	KindShifts     Kind = "shifts"
	KindChallenged Kind = "challenged"
	KindCandies    Kind = "candies"
	KindStamina    Kind = "stamina"
	KindFloatAid   Kind = "float_aid"
)

// Notifier is told whenever a counter changes value.
type Notifier interface {
	NotifyCounterChanged(kind Kind, value int)
}

// Config seeds a fresh set of counters for one level.
type Config struct {
	Shifts       int
	StaminaMax   int
	StaminaFloor int
}

// Counters is owned by one level session and reset only by reloading it.
type Counters struct {
	shifts     int
	challenged int
	total      int
	totalFn    func() int
	candies    int
	stamina    int
	staminaMax int
	floor      int
	floatAid   bool
	notify     Notifier
}

const totalUnknown = -1

// New creates counters at full stamina. total is evaluated lazily the first
// time the challengeable count is needed and cached afterwards.
func New(cfg Config, total func() int, n Notifier) *Counters {
	if cfg.StaminaMax < cfg.StaminaFloor {
		cfg.StaminaMax = cfg.StaminaFloor
	}
	return &Counters{
		shifts:     cfg.Shifts,
		total:      totalUnknown,
		totalFn:    total,
		stamina:    cfg.StaminaMax,
		staminaMax: cfg.StaminaMax,
		floor:      cfg.StaminaFloor,
		notify:     n,
	}
}

func (c *Counters) changed(k Kind, v int) {
	if c.notify != nil {
		c.notify.NotifyCounterChanged(k, v)
	}
}

// Shifts returns the remaining paradigm shifts.
func (c *Counters) Shifts() int { return c.shifts }

// SpendShift uses one shift; it reports false when none remain.
func (c *Counters) SpendShift() bool {
	if c.shifts <= 0 {
		return false
	}
	c.shifts--
	c.changed(KindShifts, c.shifts)
	return true
}

// RefundShift gives back a shift taken by an undone move.
func (c *Counters) RefundShift() {
	c.shifts++
	c.changed(KindShifts, c.shifts)
}

// Challenged returns how many cogs have been collected.
func (c *Counters) Challenged() int { return c.challenged }

// Total returns the number of challengeable items on the level.
func (c *Counters) Total() int {
	if c.total == totalUnknown {
		c.total = 0
		if c.totalFn != nil {
			c.total = c.totalFn()
		}
	}
	return c.total
}

// AllChallenged reports whether every challengeable item has been collected.
func (c *Counters) AllChallenged() bool {
	return c.challenged >= c.Total()
}

// Challenge adds n collected cogs.
func (c *Counters) Challenge(n int) {
	if n == 0 {
		return
	}
	c.challenged += n
	c.changed(KindChallenged, c.challenged)
}

// Unchallenge removes n collected cogs, never going below zero.
func (c *Counters) Unchallenge(n int) {
	if n == 0 {
		return
	}
	c.challenged = max(c.challenged-n, 0)
	c.changed(KindChallenged, c.challenged)
}

// Candies returns the candies held.
func (c *Counters) Candies() int { return c.candies }

// AddCandy picks up one candy.
func (c *Counters) AddCandy() {
	c.candies++
	c.changed(KindCandies, c.candies)
}

// SpendCandy eats one candy; it reports false when none are held.
func (c *Counters) SpendCandy() bool {
	if c.candies <= 0 {
		return false
	}
	c.candies--
	c.changed(KindCandies, c.candies)
	return true
}

// SetCandies overwrites the candy count.
func (c *Counters) SetCandies(n int) {
	if n == c.candies {
		return
	}
	c.candies = n
	c.changed(KindCandies, n)
}

// Stamina returns the current submersion budget.
func (c *Counters) Stamina() int { return c.stamina }

// StaminaMax returns the stamina cap.
func (c *Counters) StaminaMax() int { return c.staminaMax }

// StaminaFloor returns the stamina value meaning "not submerged".
func (c *Counters) StaminaFloor() int { return c.floor }

// Submerged reports whether the actor is currently spending stamina.
func (c *Counters) Submerged() bool { return c.stamina > c.floor && c.stamina < c.staminaMax }

// SetStamina overwrites stamina, clamped to [floor, max].
func (c *Counters) SetStamina(n int) {
	n = min(max(n, c.floor), c.staminaMax)
	c.stamina = n
	c.changed(KindStamina, n)
}

// ApplyStaminaRule updates stamina after the actor settles on a cell.
// On water stamina grows by one up to the cap; anywhere else it drops to
// the floor in a single step. It reports whether this call filled the cap.
func (c *Counters) ApplyStaminaRule(onWater bool) (filled bool) {
	if !onWater {
		c.SetStamina(c.floor)
		return false
	}
	before := c.stamina
	c.SetStamina(c.stamina + 1)
	return before < c.staminaMax && c.stamina == c.staminaMax
}

// FloatAid reports whether a balloon is carried.
func (c *Counters) FloatAid() bool { return c.floatAid }

// SetFloatAid picks up or pops the balloon.
func (c *Counters) SetFloatAid(on bool) {
	if on == c.floatAid {
		return
	}
	c.floatAid = on
	v := 0
	if on {
		v = 1
	}
	c.changed(KindFloatAid, v)
}
