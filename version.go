package conform

// Version is the library version reported in the default User-Agent.
const Version = "0.1.0"
