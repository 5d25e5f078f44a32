package singleton

import (
	"github.com/leangaurav/singleton/eager"
	"github.com/leangaurav/singleton/mutexlazy"
	"github.com/leangaurav/singleton/oncecell"
	"github.com/leangaurav/singleton/onceflag"
	"github.com/leangaurav/singleton/unsafelazy"
)

// The record types of the five variants, numbered A to E.
type (
	Singleton1 = unsafelazy.Singleton
	Singleton2 = mutexlazy.Singleton
	Guard2     = mutexlazy.Guard
	Singleton3 = oncecell.Singleton
	Singleton4 = eager.Singleton
	Singleton5 = onceflag.Singleton
)

// Instance1 returns the unsynchronized lazy instance. Not safe for concurrent use.
func Instance1() *Singleton1 {
	return unsafelazy.GetInstance()
}

// Instance2 blocks until the mutex guarded instance is free. The returned
// Guard must be released.
func Instance2() *Guard2 {
	return mutexlazy.GetInstance()
}

// Instance3 returns the read-only one-time cell instance.
func Instance3() *Singleton3 {
	return oncecell.GetInstance()
}

// Instance4 returns the eager instance, built at package initialization.
func Instance4() *Singleton4 {
	return eager.GetInstance()
}

// Init4 returns the eager instance unchanged; data is ignored.
func Init4(data string) *Singleton4 {
	return eager.Init(data)
}

// Instance5 returns the once-flag instance, constructing it on first use.
func Instance5() *Singleton5 {
	return onceflag.GetInstance()
}

// Destroy5 tears down the once-flag instance and logs the teardown.
func Destroy5() bool {
	return onceflag.Destroy()
}
