package langdetect

import (
	"testing"
)

func BenchmarkDetectRust(b *testing.B) {
	code := []byte(`use leptos::prelude::*;

#[component]
pub fn Counter() -> impl IntoView {
    let (count, set_count) = signal(0);
    view! {
        <button on:click=move |_| set_count.update(|n| *n += 1)>
            {move || count.get()}
        </button>
    }
}`)
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}

func BenchmarkDetectGo(b *testing.B) {
	code := []byte(`package main

import "fmt"

func main() {
	fmt.Println("Hello, World!")
}`)
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}

func BenchmarkDetectJSON(b *testing.B) {
	code := []byte(`{
  "name": "test",
  "version": "1.0.0",
  "dependencies": {
    "package": "^1.0.0"
  }
}`)
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}

func BenchmarkDetectEmpty(b *testing.B) {
	code := []byte("")
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}

func BenchmarkIsRust(b *testing.B) {
	code := []byte(`fn main() {
    let mut total = 0;
    for i in 0..10 {
        total += i;
    }
    println!("{total}");
}`)
	b.ResetTimer()
	for range b.N {
		IsRust(code)
	}
}
