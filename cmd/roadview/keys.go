package main

import "github.com/hajimehoshi/ebiten/v2"

// keySource is an input.ControlSource reading the ebiten keyboard state
// Update must run on the ebiten game goroutine
type keySource struct {
	left, right, up, down, jump bool
}

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func (k *keySource) Update() {
	k.left = anyPressed(ebiten.KeyArrowLeft, ebiten.KeyA)
	k.right = anyPressed(ebiten.KeyArrowRight, ebiten.KeyD)
	k.up = anyPressed(ebiten.KeyArrowUp, ebiten.KeyW)
	k.down = anyPressed(ebiten.KeyArrowDown, ebiten.KeyS)
	k.jump = ebiten.IsKeyPressed(ebiten.KeySpace)
}

func (k *keySource) TurnAmount() float64 {
	switch {
	case k.left:
		return -1
	case k.right:
		return 1
	}
	return 0
}

func (k *keySource) AccelAmount() float64 {
	switch {
	case k.up:
		return 1
	case k.down:
		return -1
	}
	return 0
}

func (k *keySource) Jump() bool {
	return k.jump
}
