package cmdline

const defaultSrgb = true
