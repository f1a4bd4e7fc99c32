package game

import (
	"errors"
	"image/color"
	"math/rand"
	"testing"

	"github.com/tomz197/planewar/internal/game/config"
	"github.com/tomz197/planewar/internal/input"
	"github.com/tomz197/planewar/internal/object"
)

type fakeDisplay struct {
	stats     []Stats
	controls  []Controls
	gameOvers []int
	hides     int
}

func (d *fakeDisplay) ShowStats(s Stats)      { d.stats = append(d.stats, s) }
func (d *fakeDisplay) SetControls(c Controls) { d.controls = append(d.controls, c) }
func (d *fakeDisplay) ShowGameOver(score int) { d.gameOvers = append(d.gameOvers, score) }
func (d *fakeDisplay) HideGameOver()          { d.hides++ }
func (d *fakeDisplay) lastControls() Controls { return d.controls[len(d.controls)-1] }
func (d *fakeDisplay) lastStats() Stats       { return d.stats[len(d.stats)-1] }

type fakeSurface struct {
	clears  int
	rects   int
	circles int
	texts   []string
}

func (s *fakeSurface) Size() (float64, float64) { return config.CanvasWidth, config.CanvasHeight }
func (s *fakeSurface) Clear()                    { s.clears++ }

func (s *fakeSurface) FillRect(x, y, w, h float64, c color.NRGBA) {
	s.rects++
}

func (s *fakeSurface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	s.circles++
}

func (s *fakeSurface) FillText(x, y float64, text string, size float64, c color.NRGBA) {
	s.texts = append(s.texts, text)
}

// newTestSession returns a session with enemy spawning disabled so tests
// control every entity on the field.
func newTestSession(t *testing.T) (*Session, *fakeDisplay, *[]Event) {
	t.Helper()
	d := &fakeDisplay{}
	events := &[]Event{}
	s := NewSession(Options{
		Seed:     1,
		Display:  d,
		Listener: func(e Event) { *events = append(*events, e) },
	})
	s.spawner.BaseRate = 0
	return s, d, events
}

func startedSession(t *testing.T) (*Session, *fakeDisplay, *[]Event) {
	t.Helper()
	s, d, ev := newTestSession(t)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s, d, ev
}

func countEvents(events []Event, want Event) int {
	n := 0
	for _, e := range events {
		if e == want {
			n++
		}
	}
	return n
}

func TestNewSessionPushesInitialState(t *testing.T) {
	s, d, _ := newTestSession(t)
	if s.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want idle", s.Phase())
	}
	if got := d.lastStats(); got != (Stats{Score: 0, Lives: 3, Level: 1}) {
		t.Errorf("stats = %+v", got)
	}
	want := Controls{StartEnabled: true, PauseEnabled: false, RestartEnabled: false, PauseLabel: LabelPause}
	if got := d.lastControls(); got != want {
		t.Errorf("controls = %+v, want %+v", got, want)
	}
}

func TestStateMachine(t *testing.T) {
	s, d, _ := newTestSession(t)

	if err := s.TogglePause(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("pause while idle: err = %v", err)
	}
	if err := s.Restart(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("restart while idle: err = %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !s.Running() || s.Paused() {
		t.Fatalf("after start: running=%v paused=%v", s.Running(), s.Paused())
	}
	if err := s.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second start: err = %v", err)
	}

	if err := s.TogglePause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if s.Phase() != PhasePaused || !s.Running() {
		t.Fatalf("phase = %v after pause", s.Phase())
	}
	if got := d.lastControls(); got.PauseLabel != LabelResume || !got.PauseEnabled || got.StartEnabled {
		t.Errorf("paused controls = %+v", got)
	}
	if err := s.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("start while paused: err = %v", err)
	}

	if err := s.TogglePause(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if s.Phase() != PhaseRunning || d.lastControls().PauseLabel != LabelPause {
		t.Fatalf("phase = %v label = %q after resume", s.Phase(), d.lastControls().PauseLabel)
	}

	if err := s.Restart(); err != nil {
		t.Errorf("restart while running: %v", err)
	}
	if s.Phase() != PhaseRunning {
		t.Errorf("phase = %v after restart", s.Phase())
	}
}

func TestRestartFromPauseResumesFresh(t *testing.T) {
	s, d, _ := startedSession(t)
	s.stats.Score = 50
	_ = s.TogglePause()
	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.Phase() != PhaseRunning || s.Stats().Score != 0 {
		t.Errorf("phase=%v stats=%+v", s.Phase(), s.Stats())
	}
	if d.lastControls().PauseLabel != LabelPause {
		t.Error("pause label should reset on restart")
	}
}

func TestPressHonorsEnabledButtons(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(s *Session)
		button  Button
		wantErr error
		want    Phase
	}{
		{"pause while idle", func(*Session) {}, ButtonPause, ErrButtonDisabled, PhaseIdle},
		{"restart while idle", func(*Session) {}, ButtonRestart, ErrButtonDisabled, PhaseIdle},
		{"play again without modal", func(*Session) {}, ButtonPlayAgain, ErrButtonDisabled, PhaseIdle},
		{"start while idle", func(*Session) {}, ButtonStart, nil, PhaseRunning},
		{"start while running", func(s *Session) { _ = s.Start() }, ButtonStart, ErrButtonDisabled, PhaseRunning},
		{"pause while running", func(s *Session) { _ = s.Start() }, ButtonPause, nil, PhasePaused},
		{"restart while running", func(s *Session) { _ = s.Start() }, ButtonRestart, nil, PhaseRunning},
		{"play again after game over", endGame, ButtonPlayAgain, nil, PhaseRunning},
		{"restart after game over", endGame, ButtonRestart, ErrButtonDisabled, PhaseGameOver},
		{"start after game over", endGame, ButtonStart, nil, PhaseRunning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestSession(t)
			tt.setup(s)
			err := s.Press(tt.button)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Press(%v) err = %v, want %v", tt.button, err, tt.wantErr)
			}
			if s.Phase() != tt.want {
				t.Errorf("phase = %v, want %v", s.Phase(), tt.want)
			}
		})
	}
}

// endGame drives a session into the game-over phase.
func endGame(s *Session) {
	_ = s.Start()
	s.stats.Lives = 1
	ram(s)
	s.Frame(&fakeSurface{})
}

// ram places an enemy on top of the player.
func ram(s *Session) {
	s.enemies = append(s.enemies, object.NewEnemy(s.player.X+10, s.player.Y, 0))
}

func TestPlayerStaysInBounds(t *testing.T) {
	s, _, _ := startedSession(t)
	rng := rand.New(rand.NewSource(3))
	keys := []input.Key{input.KeyLeft, input.KeyRight, input.KeyUp, input.KeyDown}
	w, h := s.Size()
	for i := 0; i < 2000; i++ {
		k := keys[rng.Intn(len(keys))]
		if rng.Intn(2) == 0 {
			s.KeyDown(k)
		} else {
			s.KeyUp(k)
		}
		s.Step()
		p := s.player
		if p.X < 0 || p.Y < 0 || p.Right() > w || p.Bottom() > h {
			t.Fatalf("step %d: player at %+v left the canvas", i, p.Rect)
		}
	}

	s.ReleaseKeys()
	s.KeyDown(input.KeyLeft)
	s.KeyDown(input.KeyUp)
	for i := 0; i < 200; i++ {
		s.Step()
	}
	if s.player.X != 0 || s.player.Y != 0 {
		t.Errorf("player pinned at (%v, %v), want (0, 0)", s.player.X, s.player.Y)
	}
}

func TestOffscreenEntitiesRemoved(t *testing.T) {
	s, _, _ := startedSession(t)
	s.bullets = append(s.bullets,
		object.NewBullet(10, -1), // tail still visible after one step
		object.NewBullet(20, -5), // fully above after one step
	)
	s.enemies = append(s.enemies,
		object.NewEnemy(10, 599, 2),
		object.NewEnemy(100, 500, 2),
	)
	s.Step()

	if len(s.bullets) != 1 || s.bullets[0].X != 10 {
		t.Errorf("bullets = %d, want only the one still on screen", len(s.bullets))
	}
	if len(s.enemies) != 1 || s.enemies[0].X != 100 {
		t.Errorf("enemies = %d, want only the on-screen one", len(s.enemies))
	}
}

func TestBulletKillsEnemy(t *testing.T) {
	s, d, events := startedSession(t)
	s.enemies = append(s.enemies, object.NewEnemy(100, 100, 2))
	s.bullets = append(s.bullets, object.NewBullet(110, 120))

	s.Step()

	if s.Stats().Score != config.KillReward {
		t.Errorf("score = %d, want %d", s.Stats().Score, config.KillReward)
	}
	if len(s.bullets) != 0 || len(s.enemies) != 0 {
		t.Errorf("bullets=%d enemies=%d, want both removed", len(s.bullets), len(s.enemies))
	}
	if len(s.explosions) != 1 {
		t.Fatalf("explosions = %d, want 1", len(s.explosions))
	}
	if ex := s.explosions[0]; ex.X != 120 || ex.Y != 117 {
		t.Errorf("explosion at (%v, %v), want enemy center (120, 117)", ex.X, ex.Y)
	}
	if countEvents(*events, EventKill) != 1 {
		t.Errorf("events = %v", *events)
	}
	if d.lastStats().Score != config.KillReward {
		t.Error("display not told about the new score")
	}
}

func TestBulletHitsOnlyNewestEnemy(t *testing.T) {
	s, _, _ := startedSession(t)
	older := object.NewEnemy(100, 100, 0)
	newer := object.NewEnemy(105, 100, 0)
	s.enemies = append(s.enemies, older, newer)
	s.bullets = append(s.bullets, object.NewBullet(110, 120))

	s.Step()

	if s.Stats().Score != config.KillReward {
		t.Errorf("score = %d, want a single kill", s.Stats().Score)
	}
	if len(s.enemies) != 1 || s.enemies[0] != older {
		t.Error("the most recently spawned enemy should be destroyed")
	}
}

func TestEachEnemyDiesOnce(t *testing.T) {
	s, _, _ := startedSession(t)
	s.enemies = append(s.enemies, object.NewEnemy(100, 100, 0))
	s.bullets = append(s.bullets, object.NewBullet(110, 120), object.NewBullet(115, 120))

	s.Step()

	if s.Stats().Score != config.KillReward {
		t.Errorf("score = %d, want one reward for one enemy", s.Stats().Score)
	}
	if len(s.bullets) != 1 {
		t.Errorf("bullets = %d, the second bullet should fly on", len(s.bullets))
	}
}

func TestShotEnemyCannotHitPlayer(t *testing.T) {
	s, _, events := startedSession(t)
	s.enemies = append(s.enemies, object.NewEnemy(380, 530, 2))
	s.bullets = append(s.bullets, object.NewBullet(390, 545))

	s.Step()

	if s.Stats().Lives != config.InitialLives {
		t.Errorf("lives = %d, want %d", s.Stats().Lives, config.InitialLives)
	}
	if s.Stats().Score != config.KillReward {
		t.Errorf("score = %d", s.Stats().Score)
	}
	if countEvents(*events, EventPlayerHit) != 0 {
		t.Error("unexpected player hit")
	}
}

func TestPlayerHitCostsLife(t *testing.T) {
	s, d, events := startedSession(t)
	ram(s)
	s.Step()

	if s.Stats().Lives != config.InitialLives-1 {
		t.Errorf("lives = %d", s.Stats().Lives)
	}
	if len(s.enemies) != 0 || len(s.explosions) != 1 {
		t.Errorf("enemies=%d explosions=%d", len(s.enemies), len(s.explosions))
	}
	if countEvents(*events, EventPlayerHit) != 1 || d.lastStats().Lives != config.InitialLives-1 {
		t.Error("hit not reported")
	}
}

func TestGameOverExactlyOnce(t *testing.T) {
	s, d, events := startedSession(t)
	s.stats.Score = 40
	s.stats.Lives = 1
	ram(s)
	ram(s)

	surf := &fakeSurface{}
	if s.Frame(surf) {
		t.Error("Frame should stop scheduling once the game is over")
	}
	if surf.clears != 1 {
		t.Error("the final frame should still be rendered")
	}
	if s.Phase() != PhaseGameOver || s.Running() {
		t.Fatalf("phase = %v", s.Phase())
	}
	if s.Stats().Lives != 0 {
		t.Errorf("lives = %d, want clamped at 0", s.Stats().Lives)
	}
	if len(d.gameOvers) != 1 || d.gameOvers[0] != 40 {
		t.Errorf("game over shown %v", d.gameOvers)
	}
	if !s.GameOverVisible() {
		t.Error("modal should be visible")
	}
	want := Controls{StartEnabled: true, PauseEnabled: false, RestartEnabled: false, PauseLabel: LabelPause}
	if got := d.lastControls(); got != want {
		t.Errorf("controls = %+v, want %+v", got, want)
	}

	for i := 0; i < 5; i++ {
		if s.Frame(surf) {
			t.Fatal("finished game scheduled another frame")
		}
	}
	if len(d.gameOvers) != 1 || countEvents(*events, EventGameOver) != 1 {
		t.Errorf("game over fired %d times", len(d.gameOvers))
	}

	if err := s.Press(ButtonPlayAgain); err != nil {
		t.Fatalf("play again: %v", err)
	}
	if d.hides != 1 || s.GameOverVisible() {
		t.Error("modal should be hidden on restart")
	}
	if s.Stats() != (Stats{Score: 0, Lives: 3, Level: 1}) {
		t.Errorf("stats after restart = %+v", s.Stats())
	}
	if len(s.enemies) != 0 || len(s.bullets) != 0 || len(s.explosions) != 0 {
		t.Error("entities survived the restart")
	}
}

func TestLevelFollowsScore(t *testing.T) {
	s, d, events := startedSession(t)
	s.stats.Score = 90
	s.enemies = append(s.enemies, object.NewEnemy(100, 100, 0))
	s.bullets = append(s.bullets, object.NewBullet(110, 120))
	s.Step()

	if s.Stats().Level != 2 {
		t.Errorf("level = %d at score %d, want 2", s.Stats().Level, s.Stats().Score)
	}
	if countEvents(*events, EventLevelUp) != 1 || d.lastStats().Level != 2 {
		t.Error("level up not reported")
	}

	// The level never drops even if the score is below its threshold.
	s.stats.Level = 5
	s.Step()
	if s.Stats().Level != 5 {
		t.Errorf("level dropped to %d", s.Stats().Level)
	}
}

func TestExplosionsExpire(t *testing.T) {
	s, _, _ := startedSession(t)
	s.explosions = append(s.explosions, object.NewExplosion(50, 50))
	for i := 1; i < config.ExplosionLife; i++ {
		s.Step()
		if len(s.explosions) != 1 {
			t.Fatalf("explosion gone after %d frames", i)
		}
	}
	s.Step()
	if len(s.explosions) != 0 {
		t.Error("explosion should expire after its life")
	}
}

func TestFireIsEdgeTriggeredAndGated(t *testing.T) {
	s, _, events := newTestSession(t)

	s.KeyDown(input.KeyFire)
	s.KeyUp(input.KeyFire)
	if len(s.bullets) != 0 {
		t.Fatal("fired before the game started")
	}

	_ = s.Start()
	s.KeyDown(input.KeyFire)
	s.KeyDown(input.KeyFire) // auto-repeat
	if len(s.bullets) != 1 {
		t.Fatalf("bullets = %d, want 1 per press", len(s.bullets))
	}
	if b := s.bullets[0]; b.X != 398 || b.Y != 540 {
		t.Errorf("bullet at (%v, %v), want (398, 540)", b.X, b.Y)
	}
	s.KeyUp(input.KeyFire)
	s.KeyDown(input.KeyFire)
	if len(s.bullets) != 2 {
		t.Errorf("bullets = %d after second press", len(s.bullets))
	}
	s.KeyUp(input.KeyFire)

	_ = s.TogglePause()
	s.KeyDown(input.KeyFire)
	if len(s.bullets) != 2 {
		t.Error("fired while paused")
	}
	if countEvents(*events, EventShot) != 2 {
		t.Errorf("shot events = %d", countEvents(*events, EventShot))
	}
}

func TestPauseKey(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.KeyDown(input.KeyPause)
	s.KeyUp(input.KeyPause)
	if s.Phase() != PhaseIdle {
		t.Fatal("pause key acted while idle")
	}

	_ = s.Start()
	s.KeyDown(input.KeyPause)
	if s.Phase() != PhasePaused {
		t.Fatalf("phase = %v, want paused", s.Phase())
	}
	s.KeyDown(input.KeyPause) // held, no second toggle
	if s.Phase() != PhasePaused {
		t.Fatal("held pause key toggled twice")
	}
	s.KeyUp(input.KeyPause)
	s.KeyDown(input.KeyPause)
	if s.Phase() != PhaseRunning {
		t.Errorf("phase = %v, want running", s.Phase())
	}
}

func TestPausedFrameIsFrozen(t *testing.T) {
	s, _, _ := startedSession(t)
	s.enemies = append(s.enemies, object.NewEnemy(100, 100, 2))
	_ = s.TogglePause()

	surf := &fakeSurface{}
	if s.Frame(surf) {
		t.Error("paused session asked for another frame")
	}
	if s.enemies[0].Y != 100 || surf.clears != 0 {
		t.Error("paused session advanced or redrew")
	}
}

func TestStartAndRestartKeys(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.KeyDown(input.KeyRestart)
	s.KeyUp(input.KeyRestart)
	if s.Phase() != PhaseIdle {
		t.Fatal("restart key started a game from idle")
	}
	s.KeyDown(input.KeyStart)
	s.KeyUp(input.KeyStart)
	if s.Phase() != PhaseRunning {
		t.Fatalf("phase = %v after start key", s.Phase())
	}

	endGame(s)
	s.KeyDown(input.KeyRestart)
	if s.Phase() != PhaseRunning || s.GameOverVisible() {
		t.Errorf("restart key after game over: phase=%v modal=%v", s.Phase(), s.GameOverVisible())
	}
}

func TestSpawningUsesSessionRandomness(t *testing.T) {
	run := func() int {
		s := NewSession(Options{Seed: 42})
		_ = s.Start()
		for i := 0; i < 600; i++ {
			s.Step()
			for _, e := range s.enemies {
				if e.X < 0 || e.Right() > config.CanvasWidth {
					t.Fatalf("enemy spawned outside the canvas: %+v", e.Rect)
				}
			}
		}
		return len(s.enemies)
	}
	a, b := run(), run()
	if a != b {
		t.Errorf("same seed gave %d and %d enemies", a, b)
	}
}

func TestRender(t *testing.T) {
	s, _, _ := newTestSession(t)
	surf := &fakeSurface{}
	s.Render(surf)
	if surf.rects != 1 || len(surf.texts) != 2 || surf.texts[0] != titleText {
		t.Errorf("start screen drew rects=%d texts=%v", surf.rects, surf.texts)
	}

	_ = s.Start()
	s.enemies = append(s.enemies, object.NewEnemy(0, 0, 0))
	s.bullets = append(s.bullets, object.NewBullet(300, 300))
	s.explosions = append(s.explosions, object.NewExplosion(500, 500))
	surf = &fakeSurface{}
	s.Render(surf)
	// stars + player (3) + enemy (2) + bullet (1)
	if want := config.StarCount + 6; surf.rects != want {
		t.Errorf("rects = %d, want %d", surf.rects, want)
	}
	if surf.circles != 1 || surf.clears != 1 || len(surf.texts) != 0 {
		t.Errorf("circles=%d clears=%d texts=%v", surf.circles, surf.clears, surf.texts)
	}
}

func TestButtonIDs(t *testing.T) {
	for b := ButtonStart; b <= ButtonPlayAgain; b++ {
		got, ok := ButtonFromID(b.String())
		if !ok || got != b {
			t.Errorf("ButtonFromID(%q) = %v, %v", b.String(), got, ok)
		}
	}
	if _, ok := ButtonFromID("gameCanvas"); ok {
		t.Error("unknown id accepted")
	}
}
